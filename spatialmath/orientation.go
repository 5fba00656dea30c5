// Package spatialmath provides the minimal rigid-transform vocabulary the occupancy octree needs
// to pre-transform a scan into the global frame before integration: a translation plus an
// orientation, expressed as a unit quaternion.
package spatialmath

import (
	"gonum.org/v1/gonum/num/quat"
)

// Orientation is an interface used to express a rotation of a rigid object or a frame of
// reference in 3D Euclidean space. Only the quaternion form is implemented; the octree only ever
// needs Quaternion() to rotate scan points.
type Orientation interface {
	Quaternion() quat.Number
}

// quaternion is the canonical Orientation implementation, stored as a gonum quat.Number.
type quaternion quat.Number

// NewZeroOrientation returns an orientation that applies no rotation.
func NewZeroOrientation() Orientation {
	return &quaternion{Real: 1}
}

// NewOrientationFromQuaternion wraps an arbitrary (not necessarily unit-norm) quat.Number as an
// Orientation, normalizing it first.
func NewOrientationFromQuaternion(q quat.Number) Orientation {
	norm := quat.Abs(q)
	if norm == 0 {
		return NewZeroOrientation()
	}
	unit := quat.Scale(1/norm, q)
	qq := quaternion(unit)
	return &qq
}

func (q *quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

// OrientationAlmostEqual reports whether two orientations rotate vectors the same way to within
// tol on each quaternion component (after normalizing sign, since q and -q represent the same
// rotation).
func OrientationAlmostEqual(o1, o2 Orientation, tol float64) bool {
	q1, q2 := o1.Quaternion(), o2.Quaternion()
	diff := func(a, b quat.Number) float64 {
		return absf(a.Real-b.Real) + absf(a.Imag-b.Imag) + absf(a.Jmag-b.Jmag) + absf(a.Kmag-b.Kmag)
	}
	if diff(q1, q2) <= tol {
		return true
	}
	return diff(q1, quat.Scale(-1, q2)) <= tol
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
