// Package index defines the spatial index interface used to find every
// intersecting pair in a set of triangles. Implementations (octree, brute,
// rtree) decide which pairs are worth an exact test; the exact test itself
// is shared and lives in Check.
package index

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/chazu/trisect/pkg/geom"
	"github.com/chazu/trisect/pkg/intersect"
	"github.com/deadsy/sdfx/sdf"
)

var (
	// ErrInvalidItem is returned by Add for triangles that are degenerate,
	// have non-finite coordinates or carry a negative ID.
	ErrInvalidItem = errors.New("index: invalid item")
	// ErrDuplicateID is returned by Add when the ID is already present.
	ErrDuplicateID = errors.New("index: duplicate id")
	// ErrNotBuilt is returned by Pairs before Build has run.
	ErrNotBuilt = errors.New("index: not built")
)

// Item is a triangle tagged with the caller's identifier. IDs are the
// 0-based input positions and are what pairs and reports refer to.
type Item struct {
	ID  int
	Tri geom.Triangle
}

// Bounds returns the axis-aligned bounding box of the triangle.
func (it Item) Bounds() sdf.Box3 {
	return it.Tri.Bounds()
}

// Validate checks that the item can be indexed.
func (it Item) Validate() error {
	switch {
	case it.ID < 0:
		return fmt.Errorf("%w: negative id %d", ErrInvalidItem, it.ID)
	case !it.Tri.Valid():
		return fmt.Errorf("%w: id %d: degenerate triangle", ErrInvalidItem, it.ID)
	case !it.Tri.Finite():
		return fmt.Errorf("%w: id %d: non-finite coordinates", ErrInvalidItem, it.ID)
	}
	return nil
}

// Index is the spatial index abstraction. Implementations are not safe for
// concurrent use; Pairs may use several goroutines internally.
type Index interface {
	// Add registers an item. A rejected item leaves the index unchanged.
	Add(item Item) error
	// Build prepares the index for queries.
	Build() error
	// Pairs returns every intersecting pair of registered items.
	Pairs(ctx context.Context) (*PairSet, error)
	// Dump writes a human-readable description of the index structure.
	Dump(w io.Writer) error
	// Stats reports counters gathered so far.
	Stats() Stats
}

// Stats are the counters an index exposes for diagnostics.
type Stats struct {
	Items       int   // accepted items
	Rejected    int   // items refused by Add
	Nodes       int   // tree nodes, or 1 for flat strategies
	Leaves      int   // leaf nodes
	Depth       int   // deepest level, root is 0
	Comparisons int64 // exact triangle tests run
}

func (s Stats) String() string {
	return fmt.Sprintf("items=%d rejected=%d nodes=%d leaves=%d depth=%d comparisons=%d",
		s.Items, s.Rejected, s.Nodes, s.Leaves, s.Depth, s.Comparisons)
}

// Check runs the exact intersection test for two items after a bounding
// box pre-reject. Each exact test increments counter when it is non-nil.
func Check(a, b Item, counter *atomic.Int64) (bool, error) {
	if !geom.BoxOverlap(a.Bounds(), b.Bounds()) {
		return false, nil
	}
	if counter != nil {
		counter.Add(1)
	}
	hit, err := intersect.Triangles(a.Tri, b.Tri)
	if err != nil {
		return false, fmt.Errorf("index: check %d/%d: %w", a.ID, b.ID, err)
	}
	return hit, nil
}
