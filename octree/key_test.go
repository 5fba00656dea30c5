package octree

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestCoordToKeyRoundTrip(t *testing.T) {
	tr, err := New(0.1, nil)
	test.That(t, err, test.ShouldBeNil)

	p := r3.Vector{X: 1.25, Y: -3.4, Z: 0.05}
	key, err := tr.CoordToKeyChecked(p)
	test.That(t, err, test.ShouldBeNil)

	center := tr.KeyToCoord(key, maxDepth)
	test.That(t, center.X, test.ShouldBeBetween, p.X-tr.resolution, p.X+tr.resolution)
	test.That(t, center.Y, test.ShouldBeBetween, p.Y-tr.resolution, p.Y+tr.resolution)
	test.That(t, center.Z, test.ShouldBeBetween, p.Z-tr.resolution, p.Z+tr.resolution)
}

func TestCoordToKeyOrigin(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	key, err := tr.CoordToKeyChecked(r3.Vector{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, key, test.ShouldResemble, Key{keyOffset, keyOffset, keyOffset})
}

func TestCoordToKeyOutOfRange(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	_, err = tr.CoordToKeyChecked(r3.Vector{X: 1e12})
	test.That(t, err, test.ShouldNotBeNil)
	kind, ok := ErrorKind(err)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, kind, test.ShouldEqual, KindOutOfRange)
}

func TestChildIndexBits(t *testing.T) {
	// At depth 0 the top bit of each axis selects one of the eight octants.
	key := Key{1 << 15, 0, 1 << 15}
	test.That(t, childIndex(key, 0), test.ShouldEqual, uint8(0b101))

	key = Key{0, 1 << 15, 0}
	test.That(t, childIndex(key, 0), test.ShouldEqual, uint8(0b010))
}

func TestKeyToCoordCoarserDepth(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	key, err := tr.CoordToKeyChecked(r3.Vector{X: 10, Y: 10, Z: 10})
	test.That(t, err, test.ShouldBeNil)

	finest := tr.KeyToCoord(key, maxDepth)
	coarse := tr.KeyToCoord(key, maxDepth-4)
	// A coarser-depth voxel is larger, so its center need not equal the finest one, but both must
	// be within the coarse voxel's width of the same point.
	coarseWidth := tr.resolution * float64(uint32(1)<<4)
	test.That(t, coarse.X, test.ShouldBeBetween, finest.X-coarseWidth, finest.X+coarseWidth)
}
