package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/chargesim/internal/world"
)

// Ensemble runs the same scenario under a range of seeds, one goroutine
// per run. Each run steps its own clone of the base world, so the
// single-writer-per-tick rule still holds inside every run.
type Ensemble struct {
	numRuns   int
	seedStart int64
}

func NewEnsemble(numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart}
}

// Run executes the ensemble and returns one result per seed, in seed
// order. The first failing run cancels the rest.
func (e *Ensemble) Run(ctx context.Context, base *world.World, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			runCfg := cfg
			runCfg.Seed = e.seedStart + int64(i)

			runner := NewRunner(NewStepper(runCfg.Seed, nil))
			res, err := runner.Run(ctx, base.Clone(), runCfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
