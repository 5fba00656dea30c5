// Package pointcloud defines the in-memory representation of a sensor scan consumed by the
// occupancy octree: an ordered set of endpoints plus metadata about their bounds.
//
// Its implementation is dictionary based and is not yet efficient for very large scans. Point
// cloud file I/O (PCD, LAS, PLY, ...) is out of scope for this package; callers are expected to
// decode those formats elsewhere and hand this package plain r3.Vector endpoints.
package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
)

// NewVector is a convenience constructor for an endpoint.
func NewVector(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

// Vectors is a series of three-dimensional vectors, sortable by r3.Vector.Cmp.
type Vectors []r3.Vector

// Len returns the number of vectors.
func (vs Vectors) Len() int { return len(vs) }

// Swap swaps two vectors positionally.
func (vs Vectors) Swap(i, j int) { vs[i], vs[j] = vs[j], vs[i] }

// Less reports whether vector i sorts before vector j.
func (vs Vectors) Less(i, j int) bool {
	return vs[i].Cmp(vs[j]) < 0
}

// MetaData tracks the axis-aligned bounds of every point that has passed through a PointCloud.
type MetaData struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64

	inited bool // guards against a bare zero-value MetaData being mistaken for "one point merged"
}

// NewMetaData returns an empty MetaData ready to Merge points into.
func NewMetaData() MetaData {
	return MetaData{
		MinX: math.MaxFloat64, MinY: math.MaxFloat64, MinZ: math.MaxFloat64,
		MaxX: -math.MaxFloat64, MaxY: -math.MaxFloat64, MaxZ: -math.MaxFloat64,
	}
}

// Merge folds a new point's position into the running bounds.
func (meta *MetaData) Merge(p r3.Vector) {
	if p.X > meta.MaxX {
		meta.MaxX = p.X
	}
	if p.Y > meta.MaxY {
		meta.MaxY = p.Y
	}
	if p.Z > meta.MaxZ {
		meta.MaxZ = p.Z
	}
	if p.X < meta.MinX {
		meta.MinX = p.X
	}
	if p.Y < meta.MinY {
		meta.MinY = p.Y
	}
	if p.Z < meta.MinZ {
		meta.MinZ = p.Z
	}
	meta.inited = true
}

// PointCloud is a general purpose container of scan endpoints. It does not dictate whether the
// cloud is sparse or dense; the current basic implementation is a dictionary keyed by position.
type PointCloud interface {
	// Size returns the number of points in the cloud.
	Size() int

	// MetaData returns the accumulated bounds of every point merged into the cloud.
	MetaData() MetaData

	// Set places the given point in the cloud. Re-setting an existing position is a no-op.
	Set(p r3.Vector) error

	// Unset removes the point at the given position, if any.
	Unset(x, y, z float64)

	// At reports whether a point exists at the given position.
	At(x, y, z float64) bool

	// Iterate calls fn for every point in the cloud. If fn returns false, iteration stops.
	// numBatches divides the work across that many batches (0 means don't divide); myBatch
	// selects which batch to iterate when numBatches > 0.
	Iterate(numBatches, myBatch int, fn func(p r3.Vector) bool)
}
