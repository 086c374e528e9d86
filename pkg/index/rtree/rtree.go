// Package rtree implements index.Index with an R-tree of triangle bounding
// boxes from github.com/dhconnelly/rtreego. Each triangle queries the tree
// with its own box and is tested exactly against the triangles it finds.
package rtree

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/chazu/trisect/pkg/geom"
	"github.com/chazu/trisect/pkg/index"
	"github.com/dhconnelly/rtreego"
)

// Compile-time interface check.
var _ index.Index = (*RtreeIndex)(nil)

// Branching factors of the underlying tree.
const (
	minChildren = 4
	maxChildren = 16
)

// entry adapts an arena position to rtreego.Spatial.
type entry struct {
	pos  int
	rect rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect {
	return e.rect
}

// RtreeIndex is a bounding-box R-tree broad phase.
type RtreeIndex struct {
	arena       *index.Arena
	entries     []*entry
	tree        *rtreego.Rtree
	comparisons atomic.Int64
}

func New() *RtreeIndex {
	return &RtreeIndex{arena: index.NewArena()}
}

// rect converts a triangle box to an rtreego rectangle. rtreego treats
// touching rectangles as disjoint, so the box is padded by Epsilon.
func rect(it index.Item) (rtreego.Rect, error) {
	b := geom.PadBox(it.Bounds(), geom.Epsilon)
	return rtreego.NewRectFromPoints(
		rtreego.Point{b.Min.X, b.Min.Y, b.Min.Z},
		rtreego.Point{b.Max.X, b.Max.Y, b.Max.Z},
	)
}

// Add registers an item; after Build it goes straight into the tree.
func (r *RtreeIndex) Add(item index.Item) error {
	pos, err := r.arena.Add(item)
	if err != nil {
		return err
	}
	rc, err := rect(item)
	if err != nil {
		return fmt.Errorf("rtree: add %d: %w", item.ID, err)
	}
	e := &entry{pos: pos, rect: rc}
	r.entries = append(r.entries, e)
	if r.tree != nil {
		r.tree.Insert(e)
	}
	return nil
}

// Build bulk-loads the tree from every registered item.
func (r *RtreeIndex) Build() error {
	objs := make([]rtreego.Spatial, len(r.entries))
	for i, e := range r.entries {
		objs[i] = e
	}
	r.tree = rtreego.NewTree(3, minChildren, maxChildren, objs...)
	return nil
}

func (r *RtreeIndex) Pairs(ctx context.Context) (*index.PairSet, error) {
	if r.tree == nil {
		return nil, fmt.Errorf("rtree: pairs: %w", index.ErrNotBuilt)
	}
	out := index.NewPairSet()
	for _, e := range r.entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("rtree: pairs: %w", err)
		}
		// Only look at later entries so each pair is tested once.
		later := func(_ []rtreego.Spatial, obj rtreego.Spatial) (bool, bool) {
			return obj.(*entry).pos <= e.pos, false
		}
		a := r.arena.Item(e.pos)
		for _, obj := range r.tree.SearchIntersect(e.rect, later) {
			b := r.arena.Item(obj.(*entry).pos)
			hit, err := index.Check(a, b, &r.comparisons)
			if err != nil {
				return nil, fmt.Errorf("rtree: pairs: %w", err)
			}
			if hit {
				out.Add(a.ID, b.ID)
			}
		}
	}
	return out, nil
}

func (r *RtreeIndex) Dump(w io.Writer) error {
	if r.tree == nil {
		_, err := fmt.Fprintln(w, "rtree: not built")
		return err
	}
	if _, err := fmt.Fprintf(w, "rtree size=%d depth=%d\n", r.tree.Size(), r.tree.Depth()); err != nil {
		return err
	}
	for _, bb := range r.tree.GetAllBoundingBoxes() {
		if _, err := fmt.Fprintf(w, "  %v\n", bb); err != nil {
			return err
		}
	}
	return nil
}

// Stats maps the R-tree onto the shared counters: Nodes is the number of
// bounding boxes above the entries and Leaves the number of entries.
func (r *RtreeIndex) Stats() index.Stats {
	s := index.Stats{
		Items:       r.arena.Len(),
		Rejected:    r.arena.Rejected(),
		Comparisons: r.comparisons.Load(),
	}
	if r.tree != nil {
		s.Nodes = len(r.tree.GetAllBoundingBoxes())
		s.Depth = r.tree.Depth() - 1
		s.Leaves = r.tree.Size()
	}
	return s
}
