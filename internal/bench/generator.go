package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/ordsearch"
	"github.com/hupe1980/ordsearch/testutil"
)

// DefaultRebuildEvery is the number of payloads between collection rebuilds.
const DefaultRebuildEvery = 1000

// ErrInvalidConfig is returned for a generator configuration that cannot run.
var ErrInvalidConfig = errors.New("bench: invalid config")

// Config configures a Generator.
type Config struct {
	// Size is the number of values per collection.
	Size int
	// RebuildEvery is the number of payloads between rebuilds.
	// Zero selects DefaultRebuildEvery.
	RebuildEvery int
	// Seed seeds values and queries.
	Seed int64
	// OptionsA and OptionsB configure the two collections built from the
	// same values.
	OptionsA []ordsearch.Option
	OptionsB []ordsearch.Option
}

// Payload is one measurement input: a query and the two collections to run
// it against. A and B hold the same values.
type Payload struct {
	Query uint32
	A     *ordsearch.Collection[uint32]
	B     *ordsearch.Collection[uint32]
}

// Generator produces payloads over random uint32 collections.
//
// Generator is not safe for concurrent use.
type Generator struct {
	cfg       Config
	rng       *testutil.RNG
	values    []uint32
	iteration int
	a, b      *ordsearch.Collection[uint32]
	rebuilds  int
}

// NewGenerator creates a Generator and builds its first collections.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.Size < 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidConfig, cfg.Size)
	}
	if cfg.RebuildEvery < 0 {
		return nil, fmt.Errorf("%w: rebuild interval %d", ErrInvalidConfig, cfg.RebuildEvery)
	}
	if cfg.RebuildEvery == 0 {
		cfg.RebuildEvery = DefaultRebuildEvery
	}

	g := &Generator{
		cfg:    cfg,
		rng:    testutil.NewRNG(cfg.Seed),
		values: make([]uint32, cfg.Size),
	}
	if err := g.rebuild(); err != nil {
		return nil, err
	}

	return g, nil
}

// Size returns the number of values per collection.
func (g *Generator) Size() int {
	return g.cfg.Size
}

// Rebuilds returns how many times the collections were built, including the
// initial build.
func (g *Generator) Rebuilds() int {
	return g.rebuilds
}

// Next returns the next payload, rebuilding the collections first every
// RebuildEvery payloads.
func (g *Generator) Next() (Payload, error) {
	g.iteration++
	if g.iteration%g.cfg.RebuildEvery == 0 {
		if err := g.rebuild(); err != nil {
			return Payload{}, err
		}
	}

	return Payload{
		Query: g.rng.Uint32(),
		A:     g.a,
		B:     g.b,
	}, nil
}

func (g *Generator) rebuild() error {
	g.rng.FillUint32(g.values)
	slices.Sort(g.values)

	a, err := ordsearch.FromSorted(slices.Values(g.values), len(g.values), g.cfg.OptionsA...)
	if err != nil {
		return fmt.Errorf("bench: build A: %w", err)
	}
	b, err := ordsearch.FromSorted(slices.Values(g.values), len(g.values), g.cfg.OptionsB...)
	if err != nil {
		return fmt.Errorf("bench: build B: %w", err)
	}

	g.a, g.b = a, b
	g.rebuilds++

	return nil
}

// PrepareGenerators builds one Generator per config in parallel. The
// returned generators are in config order.
func PrepareGenerators(ctx context.Context, cfgs []Config) ([]*Generator, error) {
	gens := make([]*Generator, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, cfg := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			gen, err := NewGenerator(cfg)
			if err != nil {
				return err
			}
			gens[i] = gen
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return gens, nil
}
