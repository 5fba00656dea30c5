package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestTransformPointIdentity(t *testing.T) {
	p := NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 3})
	out := TransformPoint(p, r3.Vector{X: 1, Y: 0, Z: 0})
	test.That(t, out.X, test.ShouldAlmostEqual, 2.0)
	test.That(t, out.Y, test.ShouldAlmostEqual, 2.0)
	test.That(t, out.Z, test.ShouldAlmostEqual, 3.0)
}

func TestTransformPointRotation(t *testing.T) {
	// 90 degree rotation about Z: (1,0,0) -> (0,1,0)
	half := math.Pi / 4
	q := quat.Number{Real: math.Cos(half), Kmag: math.Sin(half)}
	o := NewOrientationFromQuaternion(q)
	p := NewPose(r3.Vector{}, o)

	out := TransformPoint(p, r3.Vector{X: 1, Y: 0, Z: 0})
	test.That(t, out.X, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, out.Y, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, out.Z, test.ShouldAlmostEqual, 0.0, 1e-9)
}

func TestOrientationAlmostEqual(t *testing.T) {
	o1 := NewZeroOrientation()
	o2 := NewOrientationFromQuaternion(quat.Number{Real: -1})
	test.That(t, OrientationAlmostEqual(o1, o2, 1e-9), test.ShouldBeTrue)
}
