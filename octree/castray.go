package octree

import "github.com/golang/geo/r3"

// CastRay traces a ray from origin toward direction (need not be normalized) until it reaches the
// first occupied cell, an unknown cell (unless ignoreUnknown), maxRange (< 0: no limit; 0: a
// zero-length bound), or the edge of the representable key space. It reports whether an
// occupied cell was hit and, if so, the center of the voxel that was hit.
//
// If origin's own voxel is already occupied, that voxel is returned immediately as a hit.
func (t *Tree) CastRay(origin, direction r3.Vector, ignoreUnknown bool, maxRange float64) (bool, r3.Vector, error) {
	startKey, err := t.CoordToKeyChecked(origin)
	if err != nil {
		return false, r3.Vector{}, err
	}
	if n := t.Search(startKey, maxDepth); n != nil && t.IsNodeOccupied(n) {
		return true, t.KeyToCoord(startKey, maxDepth), nil
	}

	rc, err := t.NewRayCaster(origin, direction, maxRange)
	if err != nil {
		return false, r3.Vector{}, err
	}

	for {
		key, ok := rc.Next()
		if !ok {
			return false, r3.Vector{}, nil
		}
		n := t.Search(key, maxDepth)
		if n == nil {
			if ignoreUnknown {
				continue
			}
			return false, r3.Vector{}, nil
		}
		if t.IsNodeOccupied(n) {
			return true, t.KeyToCoord(key, maxDepth), nil
		}
	}
}
