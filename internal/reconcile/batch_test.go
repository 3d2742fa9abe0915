package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestResolveYears(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := testRegistry(t, entity{"CHN", "China"}, entity{"MYS", "Malaysia"})
	r := testResolver(t, reg, testTables(t, chinaTables))

	years := map[int][]Observation{
		2018: {{Label: "CHINA PROC", Value: 500}, {Label: "HONGKONG", Value: 300}},
		2019: {{Label: "MLAYSIA", Value: 10}},
		2020: nil,
	}

	for _, limit := range []int{0, 1, 2} {
		results, err := r.ResolveYears(context.Background(), years, limit)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, map[string]float64{"CHN": 800}, results[2018].Values)
		assert.Equal(t, Stats{Matched: 1, FallbackUsed: 1}, results[2018].Stats)
		assert.Equal(t, map[string]float64{"MYS": 10}, results[2019].Values)
		assert.Equal(t, Stats{FuzzyMatched: 1}, results[2019].Stats)
		assert.True(t, results[2020].Empty())
	}
}

func TestResolveYears_MatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := testRegistry(t, entity{"CHN", "China"}, entity{"MYS", "Malaysia"}, entity{"MLT", "Malta"})
	r := testResolver(t, reg, testTables(t, chinaTables))

	years := make(map[int][]Observation)
	for y := 1990; y < 2020; y++ {
		years[y] = []Observation{
			{Label: "CHINA PROC", Value: y},
			{Label: "HONGKONG", Value: "1,000"},
			{Label: "MALTAA", Value: y - 1989},
		}
	}

	results, err := r.ResolveYears(context.Background(), years, 4)
	require.NoError(t, err)

	for y, obs := range years {
		assert.Equal(t, r.Resolve(obs), results[y], "year %d", y)
	}
}

func TestResolveYears_Cancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := testResolver(t, testRegistry(t, entity{"CHN", "China"}), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := r.ResolveYears(ctx, map[int][]Observation{2000: {{Label: "CHINA", Value: 1}}}, 1)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
