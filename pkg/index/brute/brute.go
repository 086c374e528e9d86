// Package brute implements index.Index by testing every pair of
// triangles. It is quadratic and serves as the reference the other
// strategies are checked against.
package brute

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/chazu/trisect/pkg/index"
)

// Compile-time interface check.
var _ index.Index = (*BruteIndex)(nil)

// BruteIndex compares all N·(N-1)/2 pairs.
type BruteIndex struct {
	arena       *index.Arena
	built       bool
	comparisons atomic.Int64
}

// New returns an empty BruteIndex.
func New() *BruteIndex {
	return &BruteIndex{arena: index.NewArena()}
}

func (b *BruteIndex) Add(item index.Item) error {
	_, err := b.arena.Add(item)
	return err
}

// Build only marks the index ready; there is no structure to prepare.
func (b *BruteIndex) Build() error {
	b.built = true
	return nil
}

func (b *BruteIndex) Pairs(ctx context.Context) (*index.PairSet, error) {
	if !b.built {
		return nil, fmt.Errorf("brute: pairs: %w", index.ErrNotBuilt)
	}
	items := b.arena.Items()
	out := index.NewPairSet()
	for i, a := range items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("brute: pairs: %w", err)
		}
		for _, c := range items[i+1:] {
			hit, err := index.Check(a, c, &b.comparisons)
			if err != nil {
				return nil, fmt.Errorf("brute: pairs: %w", err)
			}
			if hit {
				out.Add(a.ID, c.ID)
			}
		}
	}
	return out, nil
}

func (b *BruteIndex) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "brute items=%d\n", b.arena.Len()); err != nil {
		return err
	}
	for _, it := range b.arena.Items() {
		if _, err := fmt.Fprintf(w, "  id=%d %v\n", it.ID, it.Tri); err != nil {
			return err
		}
	}
	return nil
}

func (b *BruteIndex) Stats() index.Stats {
	return index.Stats{
		Items:       b.arena.Len(),
		Rejected:    b.arena.Rejected(),
		Nodes:       1,
		Leaves:      1,
		Comparisons: b.comparisons.Load(),
	}
}
