package pointcloud

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// basicPointCloud is the basic implementation of the PointCloud interface backed by a slice of
// points plus an index map keyed by position for fast membership tests.
type basicPointCloud struct {
	points   []r3.Vector
	indexMap map[r3.Vector]int
	meta     MetaData
}

// New returns an empty PointCloud backed by a basicPointCloud.
func New() PointCloud {
	return NewWithPrealloc(0)
}

// NewWithPrealloc returns an empty, preallocated PointCloud backed by a basicPointCloud.
func NewWithPrealloc(size int) PointCloud {
	return &basicPointCloud{
		points:   make([]r3.Vector, 0, size),
		indexMap: make(map[r3.Vector]int, size),
		meta:     NewMetaData(),
	}
}

func (cloud *basicPointCloud) Size() int {
	return len(cloud.points)
}

func (cloud *basicPointCloud) MetaData() MetaData {
	return cloud.meta
}

func (cloud *basicPointCloud) At(x, y, z float64) bool {
	_, exists := cloud.indexMap[r3.Vector{X: x, Y: y, Z: z}]
	return exists
}

// Set records p as an endpoint of the cloud. Setting an already-present position is a no-op:
// endpoints have no payload to overwrite, unlike the teacher's Data-carrying PointCloud.
func (cloud *basicPointCloud) Set(p r3.Vector) error {
	if _, exists := cloud.indexMap[p]; exists {
		return nil
	}
	cloud.indexMap[p] = len(cloud.points)
	cloud.points = append(cloud.points, p)
	cloud.meta.Merge(p)
	return nil
}

// Unset removes the point at (x, y, z), if present. It is implemented as a swap-with-last removal,
// so it does not preserve insertion order.
func (cloud *basicPointCloud) Unset(x, y, z float64) {
	key := r3.Vector{X: x, Y: y, Z: z}
	idx, exists := cloud.indexMap[key]
	if !exists {
		return
	}
	last := len(cloud.points) - 1
	cloud.points[idx] = cloud.points[last]
	cloud.indexMap[cloud.points[idx]] = idx
	cloud.points = cloud.points[:last]
	delete(cloud.indexMap, key)
}

func (cloud *basicPointCloud) Iterate(numBatches, myBatch int, fn func(p r3.Vector) bool) {
	start, end := batchBounds(len(cloud.points), numBatches, myBatch)
	for i := start; i < end; i++ {
		if !fn(cloud.points[i]) {
			return
		}
	}
}

func batchBounds(total, numBatches, myBatch int) (int, int) {
	if numBatches <= 0 {
		return 0, total
	}
	batchSize := (total + numBatches - 1) / numBatches
	start := myBatch * batchSize
	if start > total {
		start = total
	}
	end := start + batchSize
	if end > total {
		end = total
	}
	return start, end
}

// FromSlice builds a PointCloud from an already-materialized slice of endpoints. Each point goes
// through Set, so repeated positions collapse into a single point.
func FromSlice(points []r3.Vector) (PointCloud, error) {
	cloud := NewWithPrealloc(len(points))
	for _, p := range points {
		if err := cloud.Set(p); err != nil {
			return nil, errors.Wrap(err, "building point cloud from slice")
		}
	}
	return cloud, nil
}
