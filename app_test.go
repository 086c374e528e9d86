package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/chazu/trisect/pkg/config"
	"github.com/chazu/trisect/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, cfg config.Config, in string) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	require.NoError(t, NewApp(cfg).Run(context.Background(), strings.NewReader(in), &out, &errOut))
	return out.String(), errOut.String()
}

// TestE2EFourTriangles exercises the full pipeline: text → records →
// index → report, for every strategy.
func TestE2EFourTriangles(t *testing.T) {
	source, err := os.ReadFile("examples/four_triangles.txt")
	require.NoError(t, err)

	for _, strategy := range config.Strategies {
		t.Run(strategy, func(t *testing.T) {
			cfg := config.Default()
			cfg.Index.Strategy = strategy
			cfg.Output.Pairs = true

			out, errOut := run(t, cfg, string(source))
			assert.Equal(t, "0 1 2 3\n(0, 1) (2, 3)\n", out)
			assert.Empty(t, errOut)
		})
	}
}

func TestE2EExampleConfig(t *testing.T) {
	cfg, err := config.Load("examples/trisect.toml")
	require.NoError(t, err)
	source, err := os.ReadFile("examples/four_triangles.txt")
	require.NoError(t, err)

	out, _ := run(t, cfg, string(source))
	assert.Equal(t, "0 1 2 3\n(0, 1) (2, 3)\n", out)
}

func TestE2EEmptyInput(t *testing.T) {
	out, _ := run(t, config.Default(), "0\n")
	assert.Equal(t, "\n", out)
}

func TestE2ENoIntersections(t *testing.T) {
	in := `2
0 0 0  1 0 0  0 1 0
0 0 5  1 0 5  0 1 5
`
	out, _ := run(t, config.Default(), in)
	assert.Equal(t, "\n", out)
}

// TestE2EDegenerateSkipped ensures a collinear triangle is dropped without
// shifting the IDs of the ones after it.
func TestE2EDegenerateSkipped(t *testing.T) {
	in := `3
0 0 0  4 0 0  0 4 0
0 0 0  1 1 1  2 2 2
1 1 -1  1 1 1  1 -3 0
`
	cfg := config.Default()
	cfg.Output.Stats = true
	out, errOut := run(t, cfg, in)
	assert.Equal(t, "0 2\n", out)
	assert.Contains(t, errOut, "items=2")
	assert.Contains(t, errOut, "skipped=1")
	assert.Contains(t, errOut, "pairs=1")
}

func TestE2EBadInput(t *testing.T) {
	var out bytes.Buffer
	err := NewApp(config.Default()).Run(context.Background(), strings.NewReader("2 0 0 0 1 0 0 0 1 0"), &out, &out)
	assert.True(t, errors.Is(err, input.ErrTruncated), "got %v", err)
	assert.Empty(t, out.String())
}

func TestE2EDump(t *testing.T) {
	source, err := os.ReadFile("examples/four_triangles.txt")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Index.MaxObjects = 2
	cfg.Output.Dump = true
	out, _ := run(t, cfg, string(source))

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.Equal(t, "0 1 2 3", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "internal depth=0"), "dump starts with %q", lines[1])
}

func TestDetectCancelled(t *testing.T) {
	recs, err := input.ReadAll(strings.NewReader("2 0 0 0 4 0 0 0 4 0 1 1 -1 1 1 1 1 -3 0"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewApp(config.Default()).Detect(ctx, recs)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestUnknownStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Index.Strategy = "kdtree"
	_, err := NewApp(cfg).Detect(context.Background(), nil)
	assert.Error(t, err)
}

func TestGenerateFeedsRun(t *testing.T) {
	var gen bytes.Buffer
	require.NoError(t, NewApp(config.Default()).Generate("apart", 12, &gen))

	recs, err := input.ReadAll(bytes.NewReader(gen.Bytes()))
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	out, _ := run(t, config.Default(), gen.String())
	assert.NotEqual(t, "\n", out, "neighbouring mesh triangles share edges")

	err = NewApp(config.Default()).Generate("nope", 12, &gen)
	assert.Error(t, err)
}
