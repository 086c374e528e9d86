package brute

import (
	"testing"

	"github.com/chazu/trisect/pkg/index"
	"github.com/chazu/trisect/pkg/index/indextest"
	"github.com/stretchr/testify/assert"
)

func TestBruteIndex(t *testing.T) {
	indextest.Run(t, func() index.Index { return New() })
}

func TestComparisonsAreQuadratic(t *testing.T) {
	b := New()
	items := indextest.Identical(10)
	indextest.Load(t, b, items)

	st := b.Stats()
	assert.Equal(t, int64(45), st.Comparisons)
	assert.Equal(t, 1, st.Leaves)
	assert.Equal(t, 10, st.Items)
}
