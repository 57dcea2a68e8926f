package metrics

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/san-kum/neuralfield/internal/field"
	"github.com/san-kum/neuralfield/internal/loop"
)

// Ensemble runs independent headless fields with consecutive seeds and
// collects the Default metric set of each. Zero Frames runs one frame.
type Ensemble struct {
	Config    field.Config
	Container field.Container
	Frames    uint64
	Runs      int
	SeedStart int64
}

func (e Ensemble) Run(ctx context.Context) ([]map[string]float64, error) {
	e.Runs = max(e.Runs, 0)
	e.Frames = max(e.Frames, 1)
	results := make([]map[string]float64, e.Runs)
	errs := make([]error, e.Runs)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(e.SeedStart + int64(idx)))
			f := field.New(e.Container, e.Config, field.WithRand(rng))
			set := Default()
			d := loop.New(f, nil,
				loop.WithFrameSource(loop.Unthrottled(ctx)),
				loop.WithMaxFrames(e.Frames),
				loop.WithObserver(set),
			)
			errs[idx] = d.Run(ctx)
			results[idx] = set.Values()
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Mean averages each metric over the runs that report it.
func Mean(results []map[string]float64) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range results {
		for name, v := range r {
			sums[name] += v
			counts[name]++
		}
	}
	for name := range sums {
		sums[name] /= float64(counts[name])
	}
	return sums
}

// Names returns the metric names of results, sorted.
func Names(results []map[string]float64) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range results {
		for name := range r {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
