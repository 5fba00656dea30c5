package octree

import (
	"math"

	"github.com/golang/geo/r3"
)

const (
	// maxDepth is the fixed tree depth (0 = root, 16 = finest voxel), per the fixed power-of-two
	// key space this tree is built around. There is no floating-resolution mode.
	maxDepth = 16
	// keyOffset centers the signed coordinate range on the unsigned 16-bit key space: the world
	// origin maps to (keyOffset, keyOffset, keyOffset).
	keyOffset = 1 << 15
	keySpan   = 1 << 16
)

// Key is a voxel address: three 16-bit components, each centered at keyOffset. It identifies the
// finest-resolution voxel at the tree's fixed depth of 16.
type Key [3]uint16

// coordToKey converts a single coordinate to a key component at the tree's resolution, returning
// an error if the coordinate falls outside the representable range.
func (t *Tree) coordToKey(c float64) (uint16, error) {
	v := math.Floor(c/t.resolution) + keyOffset
	if v < 0 || v >= keySpan {
		return 0, newError(KindOutOfRange, "coordinate %v is out of range for resolution %v", c, t.resolution)
	}
	return uint16(v), nil
}

// CoordToKeyChecked converts a world point to a Key, failing with KindOutOfRange if any axis
// falls outside the representable coordinate range at this tree's resolution.
func (t *Tree) CoordToKeyChecked(p r3.Vector) (Key, error) {
	kx, err := t.coordToKey(p.X)
	if err != nil {
		return Key{}, err
	}
	ky, err := t.coordToKey(p.Y)
	if err != nil {
		return Key{}, err
	}
	kz, err := t.coordToKey(p.Z)
	if err != nil {
		return Key{}, err
	}
	return Key{kx, ky, kz}, nil
}

// keyToCoordComponent returns the center, along one axis, of the voxel identified by k at depth.
// At depth 16 (finest) this is (k - keyOffset + 0.5) * resolution; at a coarser depth the key is
// first rounded down to that depth's voxel boundary.
func (t *Tree) keyToCoordComponent(k uint16, depth uint8) float64 {
	if depth >= maxDepth {
		return (float64(k) - keyOffset + 0.5) * t.resolution
	}
	shift := maxDepth - depth
	mask := uint16(0xFFFF << shift)
	boundary := k & mask
	half := float64(uint32(1) << (shift - 1))
	return (float64(boundary) - keyOffset + half) * t.resolution
}

// KeyToCoord returns the voxel center, at the given depth, that key addresses.
func (t *Tree) KeyToCoord(k Key, depth uint8) r3.Vector {
	return r3.Vector{
		X: t.keyToCoordComponent(k[0], depth),
		Y: t.keyToCoordComponent(k[1], depth),
		Z: t.keyToCoordComponent(k[2], depth),
	}
}

// childIndex extracts the child slot (0..7) that key addresses during top-down descent at depth
// d: one bit per axis at position 15-d, packed x (LSB) | y<<1 | z<<2.
func childIndex(key Key, depth uint8) uint8 {
	shift := maxDepth - 1 - depth
	var idx uint8
	if key[0]&(1<<shift) != 0 {
		idx |= 1
	}
	if key[1]&(1<<shift) != 0 {
		idx |= 2
	}
	if key[2]&(1<<shift) != 0 {
		idx |= 4
	}
	return idx
}
