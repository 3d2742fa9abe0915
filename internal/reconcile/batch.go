package reconcile

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ResolveYears runs one independent pass per year, at most limit at a time
// (no limit when limit <= 0). Every pass gets its own accumulators; only the
// registry and tables are shared. Cancelling ctx stops passes not yet started.
func (r *Resolver) ResolveYears(ctx context.Context, years map[int][]Observation, limit int) (map[int]*Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	var mu sync.Mutex

	results := make(map[int]*Result, len(years))

	for _, year := range sortedYears(years) {
		year := year
		obs := years[year]

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res := r.resolve(obs, r.logger.With(zap.Int("year", year)))

			mu.Lock()
			results[year] = res
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func sortedYears(years map[int][]Observation) []int {
	out := make([]int, 0, len(years))
	for y := range years {
		out = append(out, y)
	}

	sort.Ints(out)

	return out
}
