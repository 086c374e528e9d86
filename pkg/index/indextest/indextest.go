// Package indextest provides triangle fixtures and a behavioural test
// suite shared by the index.Index implementations.
package indextest

import (
	"bytes"
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/chazu/trisect/pkg/geom"
	"github.com/chazu/trisect/pkg/index"
	"github.com/chazu/trisect/pkg/intersect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty index.
type Factory func() index.Index

func mustItem(id int, a, b, c geom.Vector3) index.Item {
	tr, err := geom.NewTriangle(a, b, c)
	if err != nil {
		panic(err)
	}
	return index.Item{ID: id, Tri: tr}
}

// Crossing returns two triangles with IDs id and id+1, shifted by off,
// where the second pierces the first.
func Crossing(id int, off geom.Vector3) []index.Item {
	v := func(x, y, z float64) geom.Vector3 { return geom.Vec3(x, y, z).Add(off) }
	return []index.Item{
		mustItem(id, v(0, 0, 0), v(4, 0, 0), v(0, 4, 0)),
		mustItem(id+1, v(1, 1, -1), v(1, 1, 1), v(1, -3, 0)),
	}
}

// FourTriangles returns two crossing pairs far apart: {0,1} and {2,3}.
func FourTriangles() []index.Item {
	return append(Crossing(0, geom.Vec3(0, 0, 0)), Crossing(2, geom.Vec3(20, 20, 20))...)
}

// Scaled returns items with every vertex multiplied by k.
func Scaled(items []index.Item, k float64) []index.Item {
	out := make([]index.Item, len(items))
	for i, it := range items {
		v := it.Tri.Vertices()
		out[i] = mustItem(it.ID, v[0].Scale(k), v[1].Scale(k), v[2].Scale(k))
	}
	return out
}

// Identical returns n copies of the same triangle.
func Identical(n int) []index.Item {
	items := make([]index.Item, n)
	for i := range items {
		items[i] = mustItem(i, geom.Vec3(0, 0, 0), geom.Vec3(1, 0, 0), geom.Vec3(0, 1, 0))
	}
	return items
}

// Random returns n triangles with edges up to size scattered in a cube of
// the given extent. The same seed yields the same triangles.
func Random(seed uint64, n int, extent, size float64) []index.Item {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rv := func(s float64) geom.Vector3 {
		return geom.Vec3(r.Float64()*s, r.Float64()*s, r.Float64()*s)
	}
	items := make([]index.Item, 0, n)
	for len(items) < n {
		c := rv(extent)
		half := geom.Vec3(size, size, size).Scale(0.5)
		tr, err := geom.NewTriangle(
			c.Add(rv(size)).Sub(half),
			c.Add(rv(size)).Sub(half),
			c.Add(rv(size)).Sub(half),
		)
		if err != nil {
			continue
		}
		items = append(items, index.Item{ID: len(items), Tri: tr})
	}
	return items
}

// Grid returns a bumpy n×n height field split into 2·n² triangles.
// Neighbouring triangles share edges or vertices.
func Grid(n int) []index.Item {
	h := func(i, j int) geom.Vector3 {
		x, y := float64(i), float64(j)
		return geom.Vec3(x, y, math.Sin(x)*math.Cos(y))
	}
	var items []index.Item
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			items = append(items,
				mustItem(len(items), h(i, j), h(i+1, j), h(i+1, j+1)),
				mustItem(len(items)+1, h(i, j), h(i+1, j+1), h(i, j+1)),
			)
		}
	}
	return items
}

// Reference tests every pair directly.
func Reference(t testing.TB, items []index.Item) *index.PairSet {
	t.Helper()
	out := index.NewPairSet()
	for i, a := range items {
		for _, b := range items[i+1:] {
			hit, err := intersect.Triangles(a.Tri, b.Tri)
			require.NoError(t, err)
			if hit {
				out.Add(a.ID, b.ID)
			}
		}
	}
	return out
}

// Load adds items, builds the index and returns its pairs.
func Load(t testing.TB, idx index.Index, items []index.Item) *index.PairSet {
	t.Helper()
	for _, it := range items {
		require.NoError(t, idx.Add(it))
	}
	require.NoError(t, idx.Build())
	ps, err := idx.Pairs(context.Background())
	require.NoError(t, err)
	return ps
}

// Run exercises the behaviour every index.Index must share.
func Run(t *testing.T, newIndex Factory) {
	t.Run("four triangles", func(t *testing.T) {
		ps := Load(t, newIndex(), FourTriangles())
		assert.Equal(t, []int{0, 1, 2, 3}, ps.IDs())
		assert.Equal(t, []index.Pair{{A: 0, B: 1}, {A: 2, B: 3}}, ps.Sorted())
	})

	t.Run("empty", func(t *testing.T) {
		ps := Load(t, newIndex(), nil)
		assert.Zero(t, ps.Len())
	})

	t.Run("single triangle", func(t *testing.T) {
		idx := newIndex()
		ps := Load(t, idx, Identical(1))
		assert.Zero(t, ps.Len())
		assert.Equal(t, 1, idx.Stats().Items)
	})

	t.Run("identical cluster", func(t *testing.T) {
		const n = 30
		ps := Load(t, newIndex(), Identical(n))
		assert.Equal(t, n*(n-1)/2, ps.Len())
	})

	t.Run("grid matches reference", func(t *testing.T) {
		items := Grid(6)
		ps := Load(t, newIndex(), items)
		assert.Equal(t, Reference(t, items).Sorted(), ps.Sorted())
	})

	t.Run("random matches reference", func(t *testing.T) {
		for _, seed := range []uint64{1, 7, 42} {
			items := Random(seed, 150, 20, 3)
			ps := Load(t, newIndex(), items)
			assert.Equal(t, Reference(t, items).Sorted(), ps.Sorted(), "seed %d", seed)
		}
	})

	t.Run("small random matches reference", func(t *testing.T) {
		for _, seed := range []uint64{5, 11} {
			items := Random(seed, 150, 0.02, 1e-3)
			ps := Load(t, newIndex(), items)
			assert.Equal(t, Reference(t, items).Sorted(), ps.Sorted(), "seed %d", seed)
		}
	})

	t.Run("small crossing", func(t *testing.T) {
		items := Scaled(FourTriangles(), 1e-4)
		ps := Load(t, newIndex(), items)
		assert.Equal(t, []index.Pair{{A: 0, B: 1}, {A: 2, B: 3}}, ps.Sorted())
	})

	t.Run("add rejects", func(t *testing.T) {
		idx := newIndex()
		items := FourTriangles()
		require.NoError(t, idx.Add(items[0]))

		err := idx.Add(items[0])
		assert.True(t, errors.Is(err, index.ErrDuplicateID), "got %v", err)

		err = idx.Add(index.Item{ID: 9})
		assert.True(t, errors.Is(err, index.ErrInvalidItem), "got %v", err)

		require.NoError(t, idx.Add(items[1]))
		require.NoError(t, idx.Build())
		ps, err := idx.Pairs(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []index.Pair{{A: 0, B: 1}}, ps.Sorted())

		st := idx.Stats()
		assert.Equal(t, 2, st.Items)
		assert.Equal(t, 2, st.Rejected)
	})

	t.Run("pairs before build", func(t *testing.T) {
		idx := newIndex()
		require.NoError(t, idx.Add(FourTriangles()[0]))
		_, err := idx.Pairs(context.Background())
		assert.True(t, errors.Is(err, index.ErrNotBuilt), "got %v", err)
	})

	t.Run("add after build", func(t *testing.T) {
		idx := newIndex()
		items := Random(3, 60, 10, 2)
		for _, it := range items {
			require.NoError(t, idx.Add(it))
		}
		require.NoError(t, idx.Build())

		extra := Crossing(len(items), geom.Vec3(2, 2, 2))
		for _, it := range extra {
			require.NoError(t, idx.Add(it))
		}
		ps, err := idx.Pairs(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Reference(t, append(items, extra...)).Sorted(), ps.Sorted())
	})

	t.Run("cancelled", func(t *testing.T) {
		idx := newIndex()
		for _, it := range FourTriangles() {
			require.NoError(t, idx.Add(it))
		}
		require.NoError(t, idx.Build())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := idx.Pairs(ctx)
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	})

	t.Run("dump", func(t *testing.T) {
		idx := newIndex()
		Load(t, idx, FourTriangles())
		var buf bytes.Buffer
		require.NoError(t, idx.Dump(&buf))
		assert.NotEmpty(t, buf.String())
	})
}
