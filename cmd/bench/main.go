package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	adapters := flag.String("adapters", strings.Join(platform.Adapters, ","), "Comma-separated adapters to bench")
	keep := flag.Bool("keep", false, "Keep the benchmark directories after running")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark (%d notes, whole-collection rewrite per mutation)\n", *count)
	for _, name := range strings.Split(*adapters, ",") {
		res, err := bench(strings.TrimSpace(name), *count, *keep, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("  %-7s seed: %-12v create: %-12v load: %-12v query: %v\n",
			name, res.seed, res.create, res.load, res.query)
	}
	fmt.Printf("--------------------------------------------------\n")
}

type result struct {
	seed   time.Duration
	create time.Duration
	load   time.Duration
	query  time.Duration
}

func bench(adapter string, count int, keep bool, logger *slog.Logger) (result, error) {
	var res result

	dir, err := os.MkdirTemp("", "jot_bench_")
	if err != nil {
		return res, err
	}
	if keep {
		fmt.Printf("Keeping bench dir: %s\n", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	ctx := context.Background()
	opts := []platform.Option{platform.WithAdapter(adapter), platform.WithLogger(logger)}
	if adapter == "memory" {
		// Share one map across reopens, like the process-lifetime medium it stands in for.
		opts = append(opts, platform.WithStorage(memory.New()))
	}

	store, err := platform.New(dir, opts...)
	if err != nil {
		return res, err
	}

	// Seed with a single Save so the per-mutation cost below is measured
	// against a full collection.
	now := time.Now()
	notes := make(core.Notes, 0, count)
	for i := 0; i < count; i++ {
		notes = append(notes, core.Note{
			ID:        fmt.Sprintf("note-%d", i),
			Title:     fmt.Sprintf("Note %d", i),
			Content:   "This is a benchmark note.",
			UpdatedAt: core.Millis(now.Add(-time.Duration(i) * time.Second)),
		})
	}
	start := time.Now()
	store.Save(ctx, notes)
	res.seed = time.Since(start)

	// The store has not loaded the seed; reopen first.
	if err := store.Close(); err != nil {
		return res, err
	}
	store, err = platform.New(dir, opts...)
	if err != nil {
		return res, err
	}

	start = time.Now()
	store.Create(ctx)
	res.create = time.Since(start)
	if err := store.Close(); err != nil {
		return res, err
	}

	start = time.Now()
	store, err = platform.New(dir, opts...)
	if err != nil {
		return res, err
	}
	res.load = time.Since(start)
	defer store.Close()

	start = time.Now()
	_ = core.Query(store.Notes(), "note 9")
	res.query = time.Since(start)

	return res, nil
}
