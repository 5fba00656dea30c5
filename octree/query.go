package octree

// OccupiedLeaves returns every occupied leaf at or above depthCap (0 means the full depth of 16).
// An inner node cut off at depthCap is classified by its own log-odds, which is the maximum of its
// children's once inner occupancy is up to date, so an inner node with both occupied and free
// children is regarded as occupied.
func (t *Tree) OccupiedLeaves(depthCap uint8) []LeafKey {
	var out []LeafKey
	if !t.rootTouched {
		return out
	}
	t.walkLeaves(clampDepthCap(depthCap), func(lk LeafKey) bool {
		if lk.LogOdds >= t.occProbThresLog {
			out = append(out, lk)
		}
		return true
	})
	return out
}

// FreeLeaves returns every free (non-occupied) leaf at or above depthCap (0 means full depth).
func (t *Tree) FreeLeaves(depthCap uint8) []LeafKey {
	var out []LeafKey
	if !t.rootTouched {
		return out
	}
	t.walkLeaves(clampDepthCap(depthCap), func(lk LeafKey) bool {
		if lk.LogOdds < t.occProbThresLog {
			out = append(out, lk)
		}
		return true
	})
	return out
}

// OccupiedLeavesInBBX returns every occupied leaf whose key falls within the currently configured
// bounding box. Callers should enable BBX gating (UseBBXLimit) and set bounds before calling; if no
// BBX is active this returns the same set as OccupiedLeaves(0).
func (t *Tree) OccupiedLeavesInBBX() []LeafKey {
	var out []LeafKey
	if !t.rootTouched {
		return out
	}
	t.walkLeaves(maxDepth, func(lk LeafKey) bool {
		if lk.LogOdds < t.occProbThresLog {
			return true
		}
		if t.useBBXLimit && !t.InBBXKey(lk.Key) {
			return true
		}
		out = append(out, lk)
		return true
	})
	return out
}

// ThresholdStats reports, over every leaf currently in the tree, how many are already at one of the
// two clamping extremes (i.e. what ToMaxLikelihood would leave unchanged) versus how many are not.
// Useful for a caller deciding whether a ToMaxLikelihood/PruneAll pass is worth running.
func (t *Tree) ThresholdStats() (thresholded, other int) {
	if !t.rootTouched {
		return 0, 0
	}
	t.walkLeaves(maxDepth, func(lk LeafKey) bool {
		if lk.LogOdds <= t.clampingThresMin || lk.LogOdds >= t.clampingThresMax {
			thresholded++
		} else {
			other++
		}
		return true
	})
	return thresholded, other
}

func clampDepthCap(depthCap uint8) uint8 {
	if depthCap == 0 || depthCap > maxDepth {
		return maxDepth
	}
	return depthCap
}
