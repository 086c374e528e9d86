// Command trisect reports which triangles of a list intersect.
//
// Usage:
//
//	trisect [-config file.toml] [-in file] [-strategy octree|brute|rtree]
//	        [-workers n] [-pairs] [-dump] [-stats] [-timeout d]
//	trisect -gen scene [-cells n]
//
// The input is a triangle count followed by nine coordinates per triangle.
// The output is the ascending list of IDs taking part in an intersection.
// With -gen, trisect instead tessellates a built-in scene and writes it in
// the input format.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chazu/trisect/pkg/config"
	"github.com/chazu/trisect/pkg/kernel/sdfx"
	"github.com/chazu/trisect/pkg/tessellate"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := flag.String("config", "", "TOML config file")
	inPath := flag.String("in", "", "triangle list (default stdin)")
	strategy := flag.String("strategy", "", "index strategy: "+strings.Join(config.Strategies, "|"))
	workers := flag.Int("workers", 0, "concurrent leaf scans (octree)")
	pairs := flag.Bool("pairs", false, "also print the intersecting pairs")
	dump := flag.Bool("dump", false, "print the index structure")
	stats := flag.Bool("stats", false, "print counters to stderr")
	timeout := flag.Duration("timeout", 0, "give up after this long (0 disables the limit)")
	gen := flag.String("gen", "", "write a generated scene instead: "+strings.Join(tessellate.Scenes(), "|"))
	cells := flag.Int("cells", sdfx.DefaultMeshCells, "tessellation resolution for -gen")
	flag.Parse()

	if *gen != "" {
		if err := NewApp(config.Default()).Generate(*gen, *cells, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strategy":
			cfg.Index.Strategy = *strategy
		case "workers":
			cfg.Index.Workers = *workers
		case "pairs":
			cfg.Output.Pairs = *pairs
		case "dump":
			cfg.Output.Dump = *dump
		case "stats":
			cfg.Output.Stats = *stats
		case "timeout":
			cfg.Timeout.Duration = *timeout
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "trisect: %v\n", err)
		os.Exit(2)
	}

	var in io.Reader = os.Stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	app := NewApp(cfg)
	if err := app.Run(context.Background(), in, os.Stdout, os.Stderr); err != nil {
		log.Printf("trisect: %v", err)
		os.Exit(1)
	}
}
