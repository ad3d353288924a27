package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SameC137/flight-search/internal/amadeus"
)

func dated(date, total string) amadeus.FlightDate {
	return amadeus.FlightDate{
		Type:          "flight-date",
		Origin:        "MAD",
		Destination:   "MUC",
		DepartureDate: date,
		Price:         amadeus.Price{Total: total},
	}
}

func TestMinPriceByDate_KeepsMinimumPerDate(t *testing.T) {
	prices := MinPriceByDate([]amadeus.FlightDate{
		dated("2024-06-01", "120"),
		dated("2024-06-01", "95"),
		dated("2024-06-02", "200"),
	})

	assert.Equal(t, map[string]float64{
		"2024-06-01": 95,
		"2024-06-02": 200,
	}, prices)
}

func TestMinPriceByDate_SkipsUnparseablePrices(t *testing.T) {
	prices := MinPriceByDate([]amadeus.FlightDate{
		dated("2024-06-01", "120"),
		dated("2024-06-01", "cheap"),
		dated("2024-06-03", ""),
	})

	assert.Equal(t, map[string]float64{"2024-06-01": 120}, prices)
}

func TestMinPriceByDate_Empty(t *testing.T) {
	assert.Empty(t, MinPriceByDate(nil))
}
