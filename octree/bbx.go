package octree

import "github.com/golang/geo/r3"

// UseBBXLimit enables or disables BBX gating of updates and queries. Disabled by default.
func (t *Tree) UseBBXLimit(enable bool) {
	t.useBBXLimit = enable
}

// BBXSet reports whether BBX gating is currently enabled.
func (t *Tree) BBXSet() bool {
	return t.useBBXLimit
}

// SetBBXMin sets the minimum corner of the active bounding box and precomputes its key.
func (t *Tree) SetBBXMin(min r3.Vector) error {
	key, err := t.CoordToKeyChecked(min)
	if err != nil {
		return err
	}
	t.bbxMin = min
	t.bbxMinKey = key
	return nil
}

// SetBBXMax sets the maximum corner of the active bounding box and precomputes its key.
func (t *Tree) SetBBXMax(max r3.Vector) error {
	key, err := t.CoordToKeyChecked(max)
	if err != nil {
		return err
	}
	t.bbxMax = max
	t.bbxMaxKey = key
	return nil
}

// BBXMin returns the currently set minimum corner of the bounding box.
func (t *Tree) BBXMin() r3.Vector { return t.bbxMin }

// BBXMax returns the currently set maximum corner of the bounding box.
func (t *Tree) BBXMax() r3.Vector { return t.bbxMax }

// InBBX reports whether point lies within the currently set bounding box (inclusive).
func (t *Tree) InBBX(point r3.Vector) bool {
	return point.X >= t.bbxMin.X && point.X <= t.bbxMax.X &&
		point.Y >= t.bbxMin.Y && point.Y <= t.bbxMax.Y &&
		point.Z >= t.bbxMin.Z && point.Z <= t.bbxMax.Z
}

// InBBXKey reports whether key lies within the currently set bounding box's key bounds (inclusive,
// axis-aligned).
func (t *Tree) InBBXKey(key Key) bool {
	return key[0] >= t.bbxMinKey[0] && key[0] <= t.bbxMaxKey[0] &&
		key[1] >= t.bbxMinKey[1] && key[1] <= t.bbxMaxKey[1] &&
		key[2] >= t.bbxMinKey[2] && key[2] <= t.bbxMaxKey[2]
}

// EnableChangeDetection turns change-set tracking (C9) on or off.
func (t *Tree) EnableChangeDetection(enable bool) {
	t.useChangeDetection = enable
}

// ResetChangeSet clears the set of keys changed since the last reset. It is the caller's
// responsibility to call this after consuming ChangedKeys.
func (t *Tree) ResetChangeSet() {
	t.changedKeys = NewKeySet()
}

// ChangedKeys returns every key whose occupancy classification has flipped, or which was newly
// created, since the set was last reset.
func (t *Tree) ChangedKeys() []Key {
	return t.changedKeys.Keys()
}
