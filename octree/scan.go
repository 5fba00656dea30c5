package octree

import (
	"github.com/golang/geo/r3"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/eaa3/octomap/pointcloud"
	"github.com/eaa3/octomap/spatialmath"
)

// ScanOptions controls a single call to InsertPointCloud / InsertPointCloudFromFrame.
type ScanOptions struct {
	// MaxRange bounds how far an individual beam is integrated. A negative value (the default
	// zero value is NOT negative, so callers must opt in) means the complete beam is used.
	MaxRange float64
	// Lazy defers pruning and inner-node aggregation during the per-key updates; the caller must
	// call UpdateInnerOccupancy before any query depending on multi-resolution aggregates.
	Lazy bool
	// Pruning requests the tree be left fully pruned once the scan is integrated. When Lazy is
	// false this is automatic (each UpdateNode call already prunes along its path). When Lazy is
	// true, InsertPointCloud performs one explicit PruneAll pass at the end so the guarantee holds
	// either way.
	Pruning bool
}

// UpdateResult reports what a scan integration did, including how many endpoints could not be
// keyed (OutOfRange) and were skipped rather than aborting the whole scan.
type UpdateResult struct {
	FreeCells     int
	OccupiedCells int
	Skipped       int
	// SkipErr accumulates every per-point OutOfRange error via multierr, for callers that want the
	// detail behind the skip counter rather than just its count.
	SkipErr error
}

// InsertPointCloud integrates a scan (endpoints in the global frame) taken from origin (also in
// the global frame). See computeUpdate for the free/occupied resolution algorithm.
func (t *Tree) InsertPointCloud(cloud pointcloud.PointCloud, origin r3.Vector, opts ScanOptions) (UpdateResult, error) {
	free, occupied, result := t.computeUpdate(cloud, origin, opts.MaxRange)
	t.applyUpdate(free, occupied, opts.Lazy)
	if opts.Pruning && opts.Lazy {
		t.PruneAll()
	}
	return result, nil
}

// InsertPointCloudFromFrame pre-transforms sensorOrigin and every point of cloud by frameOrigin
// before integrating, per the original "insertScan with separate sensor and frame origin"
// overload: frameOrigin is the pose of the sensor's reference frame within the global frame.
func (t *Tree) InsertPointCloudFromFrame(
	cloud pointcloud.PointCloud,
	sensorOrigin r3.Vector,
	frameOrigin spatialmath.Pose,
	opts ScanOptions,
) (UpdateResult, error) {
	globalOrigin := spatialmath.TransformPoint(frameOrigin, sensorOrigin)

	transformed := pointcloud.NewWithPrealloc(cloud.Size())
	cloud.Iterate(0, 0, func(p r3.Vector) bool {
		_ = transformed.Set(spatialmath.TransformPoint(frameOrigin, p))
		return true
	})

	return t.InsertPointCloud(transformed, globalOrigin, opts)
}

// InsertRay integrates a single beam from origin to end, equivalent to a one-point InsertPointCloud.
func (t *Tree) InsertRay(origin, end r3.Vector, maxRange float64) (UpdateResult, error) {
	cloud := pointcloud.NewWithPrealloc(1)
	_ = cloud.Set(end)
	return t.InsertPointCloud(cloud, origin, ScanOptions{MaxRange: maxRange, Pruning: true})
}

// computeUpdate is the C6 "computeUpdate" helper: it resolves an entire scan into two keysets
// (free, occupied) without mutating the tree, so the outcome of a scan is independent of the
// order its points were given in. Occupied cells win any conflict with free cells.
func (t *Tree) computeUpdate(cloud pointcloud.PointCloud, origin r3.Vector, maxRange float64) (KeySet, KeySet, UpdateResult) {
	free := NewKeySet()
	occupied := NewKeySet()
	result := UpdateResult{}

	cloud.Iterate(0, 0, func(p r3.Vector) bool {
		dist := p.Sub(origin).Norm()

		if maxRange < 0 || dist <= maxRange {
			key, err := t.CoordToKeyChecked(p)
			if err != nil {
				result.Skipped++
				result.SkipErr = multierr.Append(result.SkipErr, err)
				return true
			}
			if t.useBBXLimit && !t.InBBXKey(key) {
				return true
			}
			occupied.Add(key)

			rc, err := t.NewRayCaster(origin, p.Sub(origin), -1)
			if err != nil {
				result.Skipped++
				result.SkipErr = multierr.Append(result.SkipErr, err)
				return true
			}
			start := rc.StartKey()
			if start != key && (!t.useBBXLimit || t.InBBXKey(start)) {
				free.Add(start)
			}
			for {
				k, ok := rc.Next()
				if !ok {
					break
				}
				if k == key {
					break // the endpoint voxel is occupied, not free; handled separately above
				}
				if t.useBBXLimit && !t.InBBXKey(k) {
					continue
				}
				free.Add(k)
			}
			return true
		}

		if dist == 0 {
			result.Skipped++
			result.SkipErr = multierr.Append(result.SkipErr, newError(KindOutOfRange, "endpoint coincides with origin"))
			return true
		}
		dir := p.Sub(origin).Mul(1 / dist)
		rc, err := t.NewRayCaster(origin, dir, maxRange)
		if err != nil {
			result.Skipped++
			result.SkipErr = multierr.Append(result.SkipErr, err)
			return true
		}
		start := rc.StartKey()
		if !t.useBBXLimit || t.InBBXKey(start) {
			free.Add(start)
		}
		for {
			k, ok := rc.Next()
			if !ok {
				break
			}
			if t.useBBXLimit && !t.InBBXKey(k) {
				continue
			}
			free.Add(k)
		}
		return true
	})

	// Conflict resolution: occupied cells win. Applying this once over the fully populated sets,
	// rather than as each point streams in, is what makes insertScan's outcome independent of
	// point order within the cloud.
	resolved := NewKeySet()
	for _, k := range lo.Filter(free.Keys(), func(k Key, _ int) bool { return !occupied.Contains(k) }) {
		resolved.Add(k)
	}
	free = resolved

	result.FreeCells = free.Len()
	result.OccupiedCells = occupied.Len()
	if result.Skipped > 0 {
		t.logger.Debugw("skipped out-of-range scan points", "skipped", result.Skipped)
	}
	return free, occupied, result
}

func (t *Tree) applyUpdate(free, occupied KeySet, lazy bool) {
	for _, k := range free.Keys() {
		t.UpdateNodeOccupancy(k, false, lazy)
	}
	for _, k := range occupied.Keys() {
		t.UpdateNodeOccupancy(k, true, lazy)
	}
}

// insertScanNaive cross-checks computeUpdate's batched resolution by applying each point as an
// independent UpdateNode call, the way the original's "for testing only" insertScanNaive does.
// Unexported: used only by this package's own tests.
func (t *Tree) insertScanNaive(cloud pointcloud.PointCloud, origin r3.Vector, maxRange float64, lazy bool) {
	cloud.Iterate(0, 0, func(p r3.Vector) bool {
		dist := p.Sub(origin).Norm()
		if maxRange >= 0 && dist > maxRange {
			return true
		}
		key, err := t.CoordToKeyChecked(p)
		if err != nil {
			return true
		}
		rc, err := t.NewRayCaster(origin, p.Sub(origin), -1)
		if err != nil {
			return true
		}
		if start := rc.StartKey(); start != key {
			t.UpdateNodeOccupancy(start, false, lazy)
		}
		for {
			k, ok := rc.Next()
			if !ok {
				break
			}
			if k == key {
				break
			}
			t.UpdateNodeOccupancy(k, false, lazy)
		}
		t.UpdateNodeOccupancy(key, true, lazy)
		return true
	})
}
