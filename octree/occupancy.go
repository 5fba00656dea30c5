package octree

import "math"

// logodds converts a probability in (0, 1) to its log-odds representation: log(p / (1-p)).
func logodds(p float64) float32 {
	return float32(math.Log(p / (1 - p)))
}

// probability converts a log-odds value back to a probability in (0, 1).
func probability(logOdds float32) float64 {
	return 1 - 1/(1+math.Exp(float64(logOdds)))
}

// IsNodeOccupied reports whether n's log-odds meets or exceeds the tree's occupancy threshold.
func (t *Tree) IsNodeOccupied(n *node) bool {
	return n.LogOdds() >= t.occProbThresLog
}

// IsNodeAtThreshold reports whether n's log-odds is already at either clamp extreme, i.e. whether
// a ToMaxLikelihood pass would leave it unchanged.
func (t *Tree) IsNodeAtThreshold(n *node) bool {
	v := n.LogOdds()
	return v <= t.clampingThresMin || v >= t.clampingThresMax
}

// updateNodeLogOdds adds delta to n's log-odds and clamps the result to
// [clampingThresMin, clampingThresMax]. It reports whether the stored value changed.
func (t *Tree) updateNodeLogOdds(n *node, delta float32) bool {
	before := n.LogOdds()
	v := before + delta
	if v < t.clampingThresMin {
		v = t.clampingThresMin
	} else if v > t.clampingThresMax {
		v = t.clampingThresMax
	}
	n.SetLogOdds(v)
	return v != before
}

// integrateHit applies the tree's "hit" sensor model update to n.
func (t *Tree) integrateHit(n *node) bool {
	return t.updateNodeLogOdds(n, t.probHitLog)
}

// integrateMiss applies the tree's "miss" sensor model update to n.
func (t *Tree) integrateMiss(n *node) bool {
	return t.updateNodeLogOdds(n, t.probMissLog)
}

// nodeToMaxLikelihood collapses n's log-odds to one of the two clamp extremes according to
// whether it is currently occupied.
func (t *Tree) nodeToMaxLikelihood(n *node) {
	if t.IsNodeOccupied(n) {
		n.SetLogOdds(t.clampingThresMax)
	} else {
		n.SetLogOdds(t.clampingThresMin)
	}
}
