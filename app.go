package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/chazu/trisect/pkg/config"
	"github.com/chazu/trisect/pkg/index"
	"github.com/chazu/trisect/pkg/index/brute"
	"github.com/chazu/trisect/pkg/index/octree"
	"github.com/chazu/trisect/pkg/index/rtree"
	"github.com/chazu/trisect/pkg/input"
	"github.com/chazu/trisect/pkg/kernel/sdfx"
	"github.com/chazu/trisect/pkg/tessellate"
	"github.com/samber/lo"
)

// App runs intersection detection over triangle lists.
type App struct {
	cfg config.Config
}

// Report is the outcome of one detection run.
type Report struct {
	Pairs   *index.PairSet
	Stats   index.Stats
	Skipped int // records that never reached the index
	idx     index.Index
}

// NewApp creates an App. cfg is expected to be validated.
func NewApp(cfg config.Config) *App {
	return &App{cfg: cfg}
}

// newIndex builds the index selected by the config.
func (a *App) newIndex() (index.Index, error) {
	ic := a.cfg.Index
	switch ic.Strategy {
	case config.StrategyOctree:
		return octree.New(octree.Config{
			MaxObjects: ic.MaxObjects,
			MaxDepth:   ic.MaxDepth,
			Workers:    ic.Workers,
		}), nil
	case config.StrategyBrute:
		return brute.New(), nil
	case config.StrategyRtree:
		return rtree.New(), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", ic.Strategy)
	}
}

// Detect indexes records and finds every intersecting pair. Degenerate
// and otherwise rejected records are logged and skipped; they never
// appear in the result.
func (a *App) Detect(ctx context.Context, records []input.Record) (*Report, error) {
	return runGuarded(ctx, a.cfg.Timeout.Duration, func(ctx context.Context) (*Report, error) {
		return a.detect(ctx, records)
	})
}

func (a *App) detect(ctx context.Context, records []input.Record) (*Report, error) {
	idx, err := a.newIndex()
	if err != nil {
		return nil, err
	}

	rep := &Report{idx: idx}
	for _, rec := range records {
		tri, err := rec.Triangle()
		if err != nil {
			log.Printf("skipping triangle %d: %v", rec.ID, err)
			rep.Skipped++
			continue
		}
		if err := idx.Add(index.Item{ID: rec.ID, Tri: tri}); err != nil {
			log.Printf("skipping triangle %d: %v", rec.ID, err)
			rep.Skipped++
		}
	}

	if err := idx.Build(); err != nil {
		return nil, fmt.Errorf("build %s index: %w", a.cfg.Index.Strategy, err)
	}
	rep.Pairs, err = idx.Pairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("find pairs: %w", err)
	}
	rep.Stats = idx.Stats()
	return rep, nil
}

// Run reads a triangle list from r, detects intersections and writes the
// report to out. Stats go to errOut when enabled.
func (a *App) Run(ctx context.Context, r io.Reader, out, errOut io.Writer) error {
	records, err := input.ReadAll(r)
	if err != nil {
		return err
	}
	rep, err := a.Detect(ctx, records)
	if err != nil {
		return err
	}
	return a.write(rep, out, errOut)
}

func (a *App) write(rep *Report, out, errOut io.Writer) error {
	ids := lo.Map(rep.Pairs.IDs(), func(id int, _ int) string { return strconv.Itoa(id) })
	if _, err := fmt.Fprintln(out, strings.Join(ids, " ")); err != nil {
		return err
	}
	if a.cfg.Output.Pairs {
		if _, err := fmt.Fprintln(out, rep.Pairs.String()); err != nil {
			return err
		}
	}
	if a.cfg.Output.Dump {
		if err := rep.idx.Dump(out); err != nil {
			return err
		}
	}
	if a.cfg.Output.Stats {
		if _, err := fmt.Fprintf(errOut, "%s skipped=%d pairs=%d\n", rep.Stats, rep.Skipped, rep.Pairs.Len()); err != nil {
			return err
		}
	}
	return nil
}

// Generate tessellates a built-in scene and writes it as a triangle list.
// cells sets the marching cubes resolution per part.
func (a *App) Generate(scene string, cells int, out io.Writer) error {
	roots, err := tessellate.Scene(scene)
	if err != nil {
		return err
	}
	meshes, err := tessellate.Tessellate(roots, &sdfx.SdfxKernel{Cells: cells})
	if err != nil {
		return err
	}
	tris, _, dropped := tessellate.Triangles(meshes)
	if dropped > 0 {
		log.Printf("scene %s: dropped %d degenerate faces", scene, dropped)
	}
	return input.Write(out, tris)
}
