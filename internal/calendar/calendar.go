package calendar

import (
	"strconv"

	"github.com/SameC137/flight-search/internal/amadeus"
)

// MinPriceByDate reduces a raw date-price list to one entry per departure
// date, keeping the strictly lowest price among fare variants for that day.
// Entries whose price does not parse are skipped; a zero placeholder would
// otherwise win every comparison.
func MinPriceByDate(dates []amadeus.FlightDate) map[string]float64 {
	prices := make(map[string]float64, len(dates))
	for _, d := range dates {
		price, err := strconv.ParseFloat(d.Price.Total, 64)
		if err != nil {
			continue
		}
		if current, ok := prices[d.DepartureDate]; !ok || price < current {
			prices[d.DepartureDate] = price
		}
	}
	return prices
}
