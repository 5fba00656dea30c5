package octree

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestCastRayHitsOccupiedVoxel(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	wall := r3.Vector{X: 5, Y: 0, Z: 0}
	tr.UpdateNodeOccupancy(keyFor(t, tr, wall), true, false)

	hit, point, err := tr.CastRay(r3.Vector{}, r3.Vector{X: 1, Y: 0, Z: 0}, true, -1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit, test.ShouldBeTrue)
	test.That(t, point.X, test.ShouldBeBetween, wall.X-tr.resolution, wall.X+tr.resolution)
}

// TestCastRayStopsOnUnknownByDefault is scenario S6: an unmapped cell along the ray, with
// ignoreUnknown false, halts the cast as a miss rather than skipping through to a farther hit.
func TestCastRayStopsOnUnknownByDefault(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	// Mark everything near the origin free so only the unknown gap beyond it stops the ray.
	near := r3.Vector{X: 1, Y: 0, Z: 0}
	tr.UpdateNodeOccupancy(keyFor(t, tr, near), false, false)

	far := r3.Vector{X: 10, Y: 0, Z: 0}
	tr.UpdateNodeOccupancy(keyFor(t, tr, far), true, false)

	hit, _, err := tr.CastRay(r3.Vector{}, r3.Vector{X: 1, Y: 0, Z: 0}, false, -1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit, test.ShouldBeFalse)
}

func TestCastRayIgnoresUnknownWhenRequested(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	far := r3.Vector{X: 10, Y: 0, Z: 0}
	tr.UpdateNodeOccupancy(keyFor(t, tr, far), true, false)

	hit, point, err := tr.CastRay(r3.Vector{}, r3.Vector{X: 1, Y: 0, Z: 0}, true, -1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit, test.ShouldBeTrue)
	test.That(t, point.X, test.ShouldBeBetween, far.X-tr.resolution, far.X+tr.resolution)
}

func TestCastRayRespectsMaxRange(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	far := r3.Vector{X: 10, Y: 0, Z: 0}
	tr.UpdateNodeOccupancy(keyFor(t, tr, far), true, false)

	hit, _, err := tr.CastRay(r3.Vector{}, r3.Vector{X: 1, Y: 0, Z: 0}, true, 3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit, test.ShouldBeFalse)
}

// TestCastRayMonotonicInRange checks that widening maxRange never moves a hit farther away: a hit
// found at a smaller range must still be found, at the same point, at any larger range.
func TestCastRayMonotonicInRange(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	wall := r3.Vector{X: 4, Y: 0, Z: 0}
	tr.UpdateNodeOccupancy(keyFor(t, tr, wall), true, false)

	hit1, p1, err := tr.CastRay(r3.Vector{}, r3.Vector{X: 1, Y: 0, Z: 0}, true, 5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit1, test.ShouldBeTrue)

	hit2, p2, err := tr.CastRay(r3.Vector{}, r3.Vector{X: 1, Y: 0, Z: 0}, true, 50)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hit2, test.ShouldBeTrue)
	test.That(t, p2.X, test.ShouldAlmostEqual, p1.X)
}

func keyFor(t *testing.T, tr *Tree, p r3.Vector) Key {
	t.Helper()
	key, err := tr.CoordToKeyChecked(p)
	test.That(t, err, test.ShouldBeNil)
	return key
}
