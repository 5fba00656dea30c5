package octree

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestThresholdStats(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	key := Key{keyOffset, keyOffset, keyOffset}
	tr.UpdateNode(key, 0.01, false) // small nudge, not yet at a clamp extreme

	thresholded, other := tr.ThresholdStats()
	test.That(t, thresholded, test.ShouldEqual, 0)
	test.That(t, other, test.ShouldEqual, 1)

	tr.ToMaxLikelihood()
	thresholded, other = tr.ThresholdStats()
	test.That(t, thresholded, test.ShouldEqual, 1)
	test.That(t, other, test.ShouldEqual, 0)
}

func TestOccupiedLeavesInBBXHonorsActiveBBX(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	inside := r3.Vector{X: 1, Y: 0, Z: 0}
	outside := r3.Vector{X: 50, Y: 0, Z: 0}
	tr.UpdateNodeOccupancy(keyFor(t, tr, inside), true, false)
	tr.UpdateNodeOccupancy(keyFor(t, tr, outside), true, false)

	test.That(t, tr.SetBBXMin(r3.Vector{X: -2, Y: -2, Z: -2}), test.ShouldBeNil)
	test.That(t, tr.SetBBXMax(r3.Vector{X: 2, Y: 2, Z: 2}), test.ShouldBeNil)
	tr.UseBBXLimit(true)

	leaves := tr.OccupiedLeavesInBBX()
	test.That(t, len(leaves), test.ShouldEqual, 1)
	test.That(t, leaves[0].Key, test.ShouldResemble, keyFor(t, tr, inside))
}

func TestOccupiedAndFreeLeavesPartitionAllLeaves(t *testing.T) {
	tr, err := New(1.0, nil)
	test.That(t, err, test.ShouldBeNil)

	tr.UpdateNodeOccupancy(keyFor(t, tr, r3.Vector{X: 1}), true, false)
	tr.UpdateNodeOccupancy(keyFor(t, tr, r3.Vector{X: 2}), false, false)

	occupied := tr.OccupiedLeaves(0)
	free := tr.FreeLeaves(0)
	test.That(t, len(occupied)+len(free), test.ShouldEqual, len(tr.Leaves(0)))
}
