package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a 6-DoF rigid transform: a translation (Point) composed with a rotation (Orientation).
// Applying a Pose to a point is p' = R*p + t.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

type pose struct {
	point       r3.Vector
	orientation Orientation
}

// NewPose builds a Pose from a translation and an orientation. A nil orientation is treated as
// the zero orientation (no rotation).
func NewPose(point r3.Vector, orientation Orientation) Pose {
	if orientation == nil {
		orientation = NewZeroOrientation()
	}
	return &pose{point: point, orientation: orientation}
}

// NewPoseFromPoint builds a translation-only Pose.
func NewPoseFromPoint(point r3.Vector) Pose {
	return &pose{point: point, orientation: NewZeroOrientation()}
}

func (p *pose) Point() r3.Vector         { return p.point }
func (p *pose) Orientation() Orientation { return p.orientation }

// TransformPoint applies pose to p: rotate p by pose's orientation, then translate by pose's
// point. Rotation is carried out via quaternion conjugation (q * p * q^-1) rather than expanding
// to a 3x3 rotation matrix first, matching how the teacher's orientation machinery is built
// around gonum's quat.Number throughout.
func TransformPoint(p Pose, point r3.Vector) r3.Vector {
	q := p.Orientation().Quaternion()
	rotated := rotateByQuaternion(q, point)
	t := p.Point()
	return r3.Vector{X: rotated.X + t.X, Y: rotated.Y + t.Y, Z: rotated.Z + t.Z}
}

// TransformDirection rotates (but does not translate) a direction vector by pose's orientation.
func TransformDirection(p Pose, dir r3.Vector) r3.Vector {
	return rotateByQuaternion(p.Orientation().Quaternion(), dir)
}

func rotateByQuaternion(q quat.Number, v r3.Vector) r3.Vector {
	vq := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	res := quat.Mul(quat.Mul(q, vq), quat.Conj(q))
	return r3.Vector{X: res.Imag, Y: res.Jmag, Z: res.Kmag}
}
