package octree

import (
	"testing"

	"go.viam.com/test"
)

func TestNodeCreateChild(t *testing.T) {
	n := newNode()
	test.That(t, n.IsLeaf(), test.ShouldBeTrue)

	c, err := n.CreateChild(3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldNotBeNil)
	test.That(t, n.HasChildren(), test.ShouldBeTrue)
	test.That(t, n.IsLeaf(), test.ShouldBeFalse)

	_, err = n.CreateChild(3)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNodeDeleteChild(t *testing.T) {
	n := newNode()
	_, err := n.CreateChild(0)
	test.That(t, err, test.ShouldBeNil)

	n.DeleteChild(0)
	test.That(t, n.IsLeaf(), test.ShouldBeTrue)
	test.That(t, n.Child(0), test.ShouldBeNil)
}

func TestAllChildrenAreLeavesWithValue(t *testing.T) {
	n := newNode()
	_, ok := n.allChildrenAreLeavesWithValue()
	test.That(t, ok, test.ShouldBeFalse)

	for i := uint8(0); i < 8; i++ {
		c, err := n.CreateChild(i)
		test.That(t, err, test.ShouldBeNil)
		c.SetLogOdds(0.5)
	}
	value, ok := n.allChildrenAreLeavesWithValue()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, value, test.ShouldEqual, float32(0.5))

	// One differing child breaks uniformity.
	n.Child(7).SetLogOdds(0.6)
	_, ok = n.allChildrenAreLeavesWithValue()
	test.That(t, ok, test.ShouldBeFalse)
}
