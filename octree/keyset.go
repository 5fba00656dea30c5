package octree

import "github.com/samber/lo"

// KeySet is an unordered set of voxel keys, used both as scratch storage during scan integration
// (the free/occupied candidate sets) and as the change-detection set (C9). Key is already a
// plain [3]uint16 array, which Go's map implementation hashes and compares natively — satisfying
// the "hash set with a mixing function over the three key components" design note without a
// hand-rolled hash, since the runtime's map hashing already mixes all three components per key.
type KeySet map[Key]struct{}

// NewKeySet returns an empty KeySet.
func NewKeySet() KeySet {
	return make(KeySet)
}

// Add inserts key into the set.
func (s KeySet) Add(key Key) {
	s[key] = struct{}{}
}

// Remove deletes key from the set, if present.
func (s KeySet) Remove(key Key) {
	delete(s, key)
}

// Contains reports whether key is in the set.
func (s KeySet) Contains(key Key) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int {
	return len(s)
}

// Keys returns the set's keys as a slice, in unspecified order.
func (s KeySet) Keys() []Key {
	return lo.Keys(map[Key]struct{}(s))
}
