package synth

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopsynth-dev/shopsynth/internal/dataset"
	"github.com/shopsynth-dev/shopsynth/internal/profile"
)

// PickWeighted draws one value from a weighted categorical table. The table
// is assumed validated (non-empty, weights summing to 1); the final entry
// absorbs any floating-point shortfall.
func PickWeighted(rng *rand.Rand, table []profile.Weighted) string {
	r := rng.Float64()
	acc := 0.0
	for _, w := range table {
		acc += w.Weight
		if r < acc {
			return w.Value
		}
	}
	return table[len(table)-1].Value
}

// pickString draws uniformly from a candidate list.
func pickString(rng *rand.Rand, candidates []string) string {
	return candidates[rng.Intn(len(candidates))]
}

// sampleDay draws a whole-day date uniformly from [start, end], end
// inclusive.
func sampleDay(rng *rand.Rand, start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, rng.Intn(days+1))
}

// samplePrice draws a price uniformly in cents over [low, high) currency
// units.
func samplePrice(rng *rand.Rand, low, high float64) dataset.Cents {
	lowC := int64(math.Round(low * 100))
	highC := int64(math.Round(high * 100))
	return dataset.Cents(lowC + rng.Int63n(highC-lowC))
}
