package filter

import (
	"math"

	"github.com/SameC137/flight-search/internal/models"
)

// Apply keeps the flights matching every predicate in the filter state. It
// never mutates the input records; the result preserves input order.
func Apply(flights []models.Flight, state models.FilterState) []models.Flight {
	result := make([]models.Flight, 0, len(flights))
	for _, f := range flights {
		if matches(f, state) {
			result = append(result, f)
		}
	}
	return result
}

func matches(f models.Flight, state models.FilterState) bool {
	if state.PriceCeiling > 0 && f.Price > state.PriceCeiling {
		return false
	}

	if state.MaxStops != nil && f.Stops > *state.MaxStops {
		return false
	}

	if len(state.Airlines) > 0 {
		found := false
		for _, airline := range state.Airlines {
			if f.Airline == airline {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// SummarizeByAirline derives min/max/avg prices per distinct airline in the
// given flights. The summary is ordered by first occurrence of each airline,
// not sorted; callers rely on that for reproducible output.
func SummarizeByAirline(flights []models.Flight) []models.AirlinePriceSummary {
	type bucket struct {
		min, max, sum float64
		count         int
	}

	order := make([]string, 0)
	buckets := make(map[string]*bucket)

	for _, f := range flights {
		b, ok := buckets[f.Airline]
		if !ok {
			b = &bucket{min: f.Price, max: f.Price}
			buckets[f.Airline] = b
			order = append(order, f.Airline)
		}
		if f.Price < b.min {
			b.min = f.Price
		}
		if f.Price > b.max {
			b.max = f.Price
		}
		b.sum += f.Price
		b.count++
	}

	summaries := make([]models.AirlinePriceSummary, 0, len(order))
	for _, airline := range order {
		b := buckets[airline]
		summaries = append(summaries, models.AirlinePriceSummary{
			Airline: airline,
			Min:     b.min,
			Max:     b.max,
			Avg:     math.Round(b.sum/float64(b.count)*100) / 100,
		})
	}
	return summaries
}
