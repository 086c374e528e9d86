// Package octree implements index.Index with an adaptive octree. Every
// node covers a closed box; a leaf lists the triangles touching its box
// and an internal node has exactly eight children splitting the box at its
// center. A triangle straddling several children is listed in each of
// them. Triangles are stored once in an index.Arena and leaves hold arena
// positions.
package octree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/chazu/trisect/pkg/geom"
	"github.com/chazu/trisect/pkg/index"
	"github.com/deadsy/sdfx/sdf"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface check.
var _ index.Index = (*Tree)(nil)

// ErrOutOfBounds is returned by Add when a tree created with NewWithBounds
// is given a triangle that does not fit inside its root box.
var ErrOutOfBounds = errors.New("octree: item outside root bounds")

// Config controls when leaves split and how Pairs scans them.
type Config struct {
	MaxObjects int // a leaf holding more triangles than this is split
	MaxDepth   int // leaves at this depth are never split; the root is depth 0
	Workers    int // goroutines scanning leaves in Pairs; values below 1 mean 1
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{MaxObjects: 8, MaxDepth: 10, Workers: 1}
}

// Kind tells leaves from internal nodes.
type Kind int

const (
	Leaf Kind = iota
	Internal
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

type node struct {
	kind     Kind
	box      sdf.Box3
	depth    int
	members  []int // arena positions; leaves only
	children [8]*node
}

// Tree is an octree over triangles. A node turns from Leaf into Internal
// only through a split and never turns back.
type Tree struct {
	cfg         Config
	arena       *index.Arena
	bounds      sdf.Box3
	fixed       bool
	outOfBounds int
	root        *node
	comparisons atomic.Int64
}

// New returns an empty tree whose root box is fitted to the triangles at
// Build time.
func New(cfg Config) *Tree {
	if cfg.MaxObjects < 1 {
		cfg.MaxObjects = 1
	}
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Tree{cfg: cfg, arena: index.NewArena()}
}

// NewWithBounds returns an empty tree with a fixed root box. Triangles not
// inside bounds are refused with ErrOutOfBounds.
func NewWithBounds(cfg Config, bounds sdf.Box3) *Tree {
	t := New(cfg)
	t.bounds = bounds
	t.fixed = true
	return t
}

// Add registers a triangle. After Build the triangle is inserted into the
// existing leaves, which split again if they grow too large; a triangle
// outside the fitted root box triggers a rebuild instead.
func (t *Tree) Add(item index.Item) error {
	if t.fixed && item.Validate() == nil {
		if !geom.BoxContains(geom.PadBox(t.bounds, geom.Epsilon), item.Bounds()) {
			t.outOfBounds++
			return fmt.Errorf("%w: id %d", ErrOutOfBounds, item.ID)
		}
	}

	pos, err := t.arena.Add(item)
	if err != nil {
		return err
	}
	if t.root == nil {
		return nil
	}
	if !geom.BoxContains(t.root.box, item.Bounds()) {
		return t.Build()
	}
	t.insert(t.root, pos)
	return nil
}

// Build creates the root leaf holding every triangle and splits it
// recursively.
func (t *Tree) Build() error {
	box := t.bounds
	if !t.fixed {
		box = geom.EmptyBox()
		for _, it := range t.arena.Items() {
			box = geom.BoxUnion(box, it.Bounds())
		}
		if t.arena.Len() == 0 {
			box = sdf.Box3{}
		}
	}

	members := make([]int, t.arena.Len())
	for i := range members {
		members[i] = i
	}
	t.root = &node{kind: Leaf, box: geom.PadBox(box, geom.Epsilon), members: members}
	t.split(t.root)
	return nil
}

// split turns n into an internal node when it holds more than MaxObjects
// triangles, is above MaxDepth, and the children would separate at least
// some of its triangles. Children are split in turn.
func (t *Tree) split(n *node) {
	if n.kind != Leaf || len(n.members) <= t.cfg.MaxObjects || n.depth >= t.cfg.MaxDepth {
		return
	}

	boxes := geom.Octants(n.box)
	var parts [8][]int
	nonEmpty, full := 0, 0
	for i, b := range boxes {
		for _, pos := range n.members {
			if t.arena.Item(pos).Tri.OverlapsBox(b) {
				parts[i] = append(parts[i], pos)
			}
		}
		if len(parts[i]) > 0 {
			nonEmpty++
		}
		if len(parts[i]) == len(n.members) {
			full++
		}
	}
	// Every occupied child would hold the whole population and more than
	// one child is occupied: splitting cannot reduce anything.
	if full == nonEmpty && nonEmpty != 1 {
		return
	}

	n.kind = Internal
	n.members = nil
	for i, b := range boxes {
		child := &node{kind: Leaf, box: b, depth: n.depth + 1, members: parts[i]}
		n.children[i] = child
		t.split(child)
	}
}

func (t *Tree) insert(n *node, pos int) {
	if !t.arena.Item(pos).Tri.OverlapsBox(n.box) {
		return
	}
	if n.kind == Internal {
		for _, c := range n.children {
			t.insert(c, pos)
		}
		return
	}
	n.members = append(n.members, pos)
	t.split(n)
}

// IsLeaf reports whether the root has not been split.
func (t *Tree) IsLeaf() bool {
	return t.root == nil || t.root.kind == Leaf
}

// Walk visits every node depth-first, parents before children. ids holds
// the member IDs of leaves and is nil for internal nodes.
func (t *Tree) Walk(fn func(kind Kind, depth int, box sdf.Box3, ids []int)) {
	var walk func(n *node)
	walk = func(n *node) {
		var ids []int
		if n.kind == Leaf {
			ids = make([]int, len(n.members))
			for i, pos := range n.members {
				ids[i] = t.arena.Item(pos).ID
			}
		}
		fn(n.kind, n.depth, n.box, ids)
		if n.kind == Internal {
			for _, c := range n.children {
				walk(c)
			}
		}
	}
	if t.root != nil {
		walk(t.root)
	}
}

func (t *Tree) leaves() []*node {
	var out []*node
	var walk func(n *node)
	walk = func(n *node) {
		if n.kind == Leaf {
			out = append(out, n)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	if t.root != nil {
		walk(t.root)
	}
	return out
}

// Pairs tests every pair of triangles sharing a leaf and returns the
// intersecting ones. Leaves are scanned by up to Workers goroutines;
// their results are merged afterwards.
func (t *Tree) Pairs(ctx context.Context) (*index.PairSet, error) {
	if t.root == nil {
		return nil, fmt.Errorf("octree: pairs: %w", index.ErrNotBuilt)
	}

	leaves := t.leaves()
	results := make([]*index.PairSet, len(leaves))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.cfg.Workers)
	for i, leaf := range leaves {
		g.Go(func() error {
			ps, err := t.scan(ctx, leaf)
			results[i] = ps
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("octree: pairs: %w", err)
	}

	out := index.NewPairSet()
	for _, ps := range results {
		out.Merge(ps)
	}
	return out, nil
}

func (t *Tree) scan(ctx context.Context, leaf *node) (*index.PairSet, error) {
	ps := index.NewPairSet()
	if err := ctx.Err(); err != nil {
		return ps, err
	}
	for i, pi := range leaf.members {
		a := t.arena.Item(pi)
		for _, pj := range leaf.members[i+1:] {
			b := t.arena.Item(pj)
			hit, err := index.Check(a, b, &t.comparisons)
			if err != nil {
				return ps, err
			}
			if hit {
				ps.Add(a.ID, b.ID)
			}
		}
	}
	return ps, nil
}

// Dump writes one line per node, indented by depth.
func (t *Tree) Dump(w io.Writer) error {
	if t.root == nil {
		_, err := fmt.Fprintln(w, "octree: not built")
		return err
	}
	var err error
	t.Walk(func(kind Kind, depth int, box sdf.Box3, ids []int) {
		if err != nil {
			return
		}
		line := fmt.Sprintf("%s%s depth=%d box=%v-%v", strings.Repeat("  ", depth), kind, depth,
			geom.FromV3(box.Min), geom.FromV3(box.Max))
		if kind == Leaf {
			line += fmt.Sprintf(" ids=%v", ids)
		}
		_, err = fmt.Fprintln(w, line)
	})
	return err
}

// Stats reports the tree shape and the number of exact tests run so far.
func (t *Tree) Stats() index.Stats {
	s := index.Stats{
		Items:       t.arena.Len(),
		Rejected:    t.arena.Rejected() + t.outOfBounds,
		Comparisons: t.comparisons.Load(),
	}
	t.Walk(func(kind Kind, depth int, _ sdf.Box3, _ []int) {
		s.Nodes++
		if kind == Leaf {
			s.Leaves++
		}
		s.Depth = max(s.Depth, depth)
	})
	return s
}
