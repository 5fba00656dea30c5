// Package octree implements a sparse, probabilistic 3D occupancy octree: the core of a range-
// sensor mapping engine. It stores, at every visited voxel, a Bayesian log-odds estimate of
// occupancy, and exposes scan integration, raycasting, and a compact binary serialization of the
// pruned, maximum-likelihood map.
package octree

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Default sensor-model parameters, as probabilities (converted to log-odds at construction).
const (
	DefaultProbHit             = 0.7
	DefaultProbMiss            = 0.4
	DefaultOccupancyThreshold  = 0.5
	DefaultClampingThresMin    = 0.1192
	DefaultClampingThresMax    = 0.971
)

// Tree is a single-owner, single-threaded sparse occupancy octree rooted at depth 0, finest
// voxels at depth 16. It is not safe for concurrent use; callers needing parallelism should
// partition scans across independent trees and merge, or wrap a Tree in external synchronization.
type Tree struct {
	logger     golog.Logger
	resolution float64
	root       *node
	// rootTouched distinguishes an empty tree (root is a leaf because nothing has ever been
	// inserted) from a tree whose root happens to have been pruned down to a single leaf value.
	rootTouched bool

	probHitLog       float32
	probMissLog      float32
	occProbThresLog  float32
	clampingThresMin float32
	clampingThresMax float32

	useBBXLimit bool
	bbxMin      r3.Vector
	bbxMax      r3.Vector
	bbxMinKey   Key
	bbxMaxKey   Key

	useChangeDetection bool
	changedKeys        KeySet
}

// Option configures a Tree at construction time.
type Option func(*Tree) error

// WithProbHit sets the sensor model's hit probability. prob must be >= 0.5 (a hit must raise
// occupancy), matching the sign constraint in the error-handling design.
func WithProbHit(prob float64) Option {
	return func(t *Tree) error {
		if prob < 0.5 {
			return newError(KindInvalidParameter, "probHit %v must be >= 0.5", prob)
		}
		t.probHitLog = logodds(prob)
		return nil
	}
}

// WithProbMiss sets the sensor model's miss probability. prob must be <= 0.5.
func WithProbMiss(prob float64) Option {
	return func(t *Tree) error {
		if prob > 0.5 {
			return newError(KindInvalidParameter, "probMiss %v must be <= 0.5", prob)
		}
		t.probMissLog = logodds(prob)
		return nil
	}
}

// WithOccupancyThreshold sets the probability at or above which a voxel is considered occupied.
func WithOccupancyThreshold(prob float64) Option {
	return func(t *Tree) error {
		t.occProbThresLog = logodds(prob)
		return nil
	}
}

// WithClampingThresholds sets the min/max log-odds clamp bounds, as probabilities.
func WithClampingThresholds(min, max float64) Option {
	return func(t *Tree) error {
		if min >= max {
			return newError(KindInvalidParameter, "clamping min %v must be < max %v", min, max)
		}
		t.clampingThresMin = logodds(min)
		t.clampingThresMax = logodds(max)
		return nil
	}
}

// WithChangeDetection enables change-set tracking (C9) from construction.
func WithChangeDetection(enabled bool) Option {
	return func(t *Tree) error {
		t.useChangeDetection = enabled
		return nil
	}
}

// New builds an empty Tree at the given resolution (world units per finest voxel edge), applying
// sensor-model defaults from spec before any options run.
func New(resolution float64, logger golog.Logger, opts ...Option) (*Tree, error) {
	if resolution <= 0 {
		return nil, newError(KindInvalidParameter, "resolution %v must be positive", resolution)
	}
	if logger == nil {
		logger = golog.NewLogger("octree")
	}
	t := &Tree{
		logger:     logger,
		resolution: resolution,
		root:       newNode(),
		changedKeys: NewKeySet(),
	}
	defaults := []Option{
		WithProbHit(DefaultProbHit),
		WithProbMiss(DefaultProbMiss),
		WithOccupancyThreshold(DefaultOccupancyThreshold),
		WithClampingThresholds(DefaultClampingThresMin, DefaultClampingThresMax),
	}
	for _, opt := range append(defaults, opts...) {
		if err := opt(t); err != nil {
			return nil, errors.Wrap(err, "building tree")
		}
	}
	logger.Debugw("created occupancy tree", "resolution", resolution)
	return t, nil
}

// Resolution returns the world-space edge length of a finest-depth voxel.
func (t *Tree) Resolution() float64 { return t.resolution }

// Reset discards the tree's contents, replacing the root with a fresh empty node. Sensor-model
// parameters, BBX, and change-detection configuration are left untouched.
func (t *Tree) Reset() {
	t.root = newNode()
	t.rootTouched = false
	t.changedKeys = NewKeySet()
}
