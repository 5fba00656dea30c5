package octree

import (
	"math"

	"github.com/golang/geo/r3"
)

// RayCaster walks the sequence of finest-resolution voxel keys a ray passes through, using a 3D
// digital differential analyser (Amanatides-Woo). It is the shared engine behind scan integration
// (C6) and raycast queries (C7): both drive it as an iterator so a caller can stop early (on the
// first occupied or unknown cell) without paying for the rest of the ray.
//
// Comparisons between competing axes' tMax use strict '<' with a deterministic x-before-y-before-z
// tie-break, so diagonal rays produce a reproducible key sequence across runs.
type RayCaster struct {
	resolution float64
	maxRange   float64 // < 0 means unlimited; 0 is a zero-length bound

	key  Key
	step [3]int8
	tMax [3]float64
	tDel [3]float64

	t    float64
	done bool
}

// NewRayCaster builds a RayCaster starting at origin's voxel, walking toward direction (which need
// not be normalized). maxRange < 0 means unlimited range, bounded only by the key space; maxRange
// == 0 is a real zero-length bound: Next yields no voxel past the starting one unless origin lies
// exactly on a face of it that the ray crosses at t = 0.
func (t *Tree) NewRayCaster(origin, direction r3.Vector, maxRange float64) (*RayCaster, error) {
	norm := direction.Norm()
	if norm == 0 {
		return nil, newError(KindInvalidParameter, "ray direction must be non-zero")
	}
	unit := direction.Mul(1 / norm)

	startKey, err := t.CoordToKeyChecked(origin)
	if err != nil {
		return nil, err
	}

	rc := &RayCaster{resolution: t.resolution, maxRange: maxRange, key: startKey}
	axes := [3]float64{unit.X, unit.Y, unit.Z}
	originAxes := [3]float64{origin.X, origin.Y, origin.Z}
	centerAxes := [3]float64{
		t.keyToCoordComponent(startKey[0], maxDepth),
		t.keyToCoordComponent(startKey[1], maxDepth),
		t.keyToCoordComponent(startKey[2], maxDepth),
	}

	for i := 0; i < 3; i++ {
		switch {
		case axes[i] > 0:
			rc.step[i] = 1
			boundary := centerAxes[i] + t.resolution/2
			rc.tMax[i] = (boundary - originAxes[i]) / axes[i]
			rc.tDel[i] = t.resolution / axes[i]
		case axes[i] < 0:
			rc.step[i] = -1
			boundary := centerAxes[i] - t.resolution/2
			rc.tMax[i] = (boundary - originAxes[i]) / axes[i]
			rc.tDel[i] = t.resolution / -axes[i]
		default:
			rc.step[i] = 0
			rc.tMax[i] = math.Inf(1)
			rc.tDel[i] = math.Inf(1)
		}
	}
	return rc, nil
}

// StartKey returns the voxel containing the ray's origin.
func (r *RayCaster) StartKey() Key { return r.key }

// Next advances the ray to the next voxel boundary crossing and returns that voxel's key. ok is
// false once the ray has exceeded maxRange or left the representable key space; no further calls
// will produce keys after that.
func (r *RayCaster) Next() (Key, bool) {
	if r.done {
		return Key{}, false
	}

	axis := 0
	if r.tMax[1] < r.tMax[axis] {
		axis = 1
	}
	if r.tMax[2] < r.tMax[axis] {
		axis = 2
	}

	t := r.tMax[axis]
	if r.maxRange >= 0 && t > r.maxRange {
		r.done = true
		return Key{}, false
	}

	step := r.step[axis]
	cur := int32(r.key[axis]) + int32(step)
	if cur < 0 || cur >= keySpan {
		r.done = true
		return Key{}, false
	}
	r.key[axis] = uint16(cur)
	r.tMax[axis] += r.tDel[axis]
	r.t = t

	return r.key, true
}
