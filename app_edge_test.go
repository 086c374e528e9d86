package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/chazu/trisect/pkg/config"
)

// ---------------------------------------------------------------------------
// 1. Identical triangles: every copy intersects every other copy.
// ---------------------------------------------------------------------------

func TestE2EIdenticalCopies(t *testing.T) {
	const n = 12
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\n", n)
	for i := 0; i < n; i++ {
		sb.WriteString("0 0 0 1 0 0 0 1 0\n")
	}

	for _, strategy := range config.Strategies {
		cfg := config.Default()
		cfg.Index.Strategy = strategy
		cfg.Index.MaxObjects = 1
		cfg.Output.Pairs = true

		var out bytes.Buffer
		if err := NewApp(cfg).Run(context.Background(), strings.NewReader(sb.String()), &out, &out); err != nil {
			t.Fatalf("%s: %v", strategy, err)
		}
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if len(lines) != 2 {
			t.Fatalf("%s: expected 2 output lines, got %d", strategy, len(lines))
		}
		if got := len(strings.Fields(lines[0])); got != n {
			t.Errorf("%s: expected %d ids, got %d", strategy, n, got)
		}
		// Each pair prints as "(a, b)", two fields.
		if got := len(strings.Fields(lines[1])) / 2; got != n*(n-1)/2 {
			t.Errorf("%s: expected %d pairs, got %d", strategy, n*(n-1)/2, got)
		}
	}
}

// ---------------------------------------------------------------------------
// 2. Shared vertex and shared edge count as intersections.
// ---------------------------------------------------------------------------

func TestE2ETouchingTriangles(t *testing.T) {
	in := `4
0 0 0  1 0 0  0 1 0
0 0 0  -1 0 0  0 0 1
10 0 0  11 0 0  10 1 0
10 0 0  11 0 0  10 0 1
`
	var out bytes.Buffer
	if err := NewApp(config.Default()).Run(context.Background(), strings.NewReader(in), &out, &out); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "0 1 2 3\n" {
		t.Errorf("expected %q, got %q", "0 1 2 3\n", got)
	}
}

// ---------------------------------------------------------------------------
// 3. Only degenerate input: nothing reaches the index, output is empty.
// ---------------------------------------------------------------------------

func TestE2EAllDegenerate(t *testing.T) {
	in := "2  0 0 0 0 0 0 0 0 0  0 0 0 1 0 0 2 0 0"
	cfg := config.Default()
	cfg.Output.Stats = true

	var out, errOut bytes.Buffer
	if err := NewApp(cfg).Run(context.Background(), strings.NewReader(in), &out, &errOut); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\n" {
		t.Errorf("expected empty id line, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "items=0 rejected=0") || !strings.Contains(errOut.String(), "skipped=2") {
		t.Errorf("unexpected stats line %q", errOut.String())
	}
}
