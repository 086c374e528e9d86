package index

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Pair is an unordered pair of item IDs, stored with A < B.
type Pair struct {
	A, B int
}

// NewPair returns the pair {a, b} in canonical order.
func NewPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.A, p.B)
}

func comparePairs(x, y Pair) int {
	if c := cmp.Compare(x.A, y.A); c != 0 {
		return c
	}
	return cmp.Compare(x.B, y.B)
}

// PairSet collects pairs without duplicates. The zero value is not usable;
// call NewPairSet.
type PairSet struct {
	m map[Pair]struct{}
}

func NewPairSet() *PairSet {
	return &PairSet{m: make(map[Pair]struct{})}
}

// Add inserts the pair {a, b}. Self pairs are ignored.
func (s *PairSet) Add(a, b int) {
	if a == b {
		return
	}
	s.m[NewPair(a, b)] = struct{}{}
}

// Merge adds every pair of o to s.
func (s *PairSet) Merge(o *PairSet) {
	for p := range o.m {
		s.m[p] = struct{}{}
	}
}

func (s *PairSet) Has(a, b int) bool {
	_, ok := s.m[NewPair(a, b)]
	return ok
}

func (s *PairSet) Len() int {
	return len(s.m)
}

// Sorted returns the pairs ordered by A, then B.
func (s *PairSet) Sorted() []Pair {
	pairs := lo.Keys(s.m)
	slices.SortFunc(pairs, comparePairs)
	return pairs
}

// IDs returns every ID taking part in at least one pair, ascending.
func (s *PairSet) IDs() []int {
	ids := lo.Uniq(lo.FlatMap(lo.Keys(s.m), func(p Pair, _ int) []int {
		return []int{p.A, p.B}
	}))
	slices.Sort(ids)
	return ids
}

// String formats the sorted pairs as "(a, b) (c, d)".
func (s *PairSet) String() string {
	parts := lo.Map(s.Sorted(), func(p Pair, _ int) string { return p.String() })
	return strings.Join(parts, " ")
}
