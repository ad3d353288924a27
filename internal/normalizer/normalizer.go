package normalizer

import (
	"regexp"
	"strconv"

	"github.com/SameC137/flight-search/internal/amadeus"
	"github.com/SameC137/flight-search/internal/models"
)

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// Result carries the flattened flights together with the dictionaries of the
// response they came from, so callers can resolve codes the normalizer did
// not touch.
type Result struct {
	Flights      []models.Flight
	Dictionaries models.Dictionaries
}

// Normalize flattens a raw offer-search response into Flight records.
// Anomalies in a single offer (unmapped codes, malformed durations or prices)
// degrade that record to a safe default instead of failing the batch.
func Normalize(resp *amadeus.OfferSearchResponse) Result {
	carriers := resp.Dictionaries.Carriers
	aircraft := resp.Dictionaries.Aircraft

	flights := make([]models.Flight, 0, len(resp.Data))
	for i, offer := range resp.Data {
		flights = append(flights, normalizeOffer(offer, i, carriers, aircraft))
	}

	return Result{
		Flights: flights,
		Dictionaries: models.Dictionaries{
			Carriers: carriers,
			Aircraft: aircraft,
		},
	}
}

func normalizeOffer(offer amadeus.Offer, index int, carriers, aircraft map[string]string) models.Flight {
	var first, last amadeus.Segment
	var stops int
	var duration string

	if len(offer.Itineraries) > 0 {
		itinerary := offer.Itineraries[0]
		duration = itinerary.Duration
		if n := len(itinerary.Segments); n > 0 {
			first = itinerary.Segments[0]
			last = itinerary.Segments[n-1]
			stops = n - 1
		}
	}

	id := offer.ID
	if id == "" {
		id = "flight-" + strconv.Itoa(index)
	}

	return models.Flight{
		ID:            id,
		Price:         parsePrice(offer.Price.Total),
		Currency:      offer.Price.Currency,
		Origin:        first.Departure.IataCode,
		Destination:   last.Arrival.IataCode,
		DepartureAt:   first.Departure.At,
		ArrivalAt:     last.Arrival.At,
		Airline:       resolve(carriers, first.CarrierCode),
		Aircraft:      resolve(aircraft, first.Aircraft.Code),
		Stops:         stops,
		Duration:      FormatDuration(duration),
		BookableSeats: offer.NumberOfBookableSeats,
	}
}

// Enrich annotates raw offers in place with names resolved through the
// response dictionaries: per-segment airline and aircraft names, operating
// carrier names and the validating airline list. Unmapped codes stay as the
// raw code.
func Enrich(resp *amadeus.OfferSearchResponse) {
	carriers := resp.Dictionaries.Carriers
	aircraft := resp.Dictionaries.Aircraft

	for oi := range resp.Data {
		offer := &resp.Data[oi]
		for ii := range offer.Itineraries {
			segments := offer.Itineraries[ii].Segments
			for si := range segments {
				seg := &segments[si]
				seg.AirlineName = resolve(carriers, seg.CarrierCode)
				if seg.Aircraft.Code != "" {
					seg.Aircraft.Name = resolve(aircraft, seg.Aircraft.Code)
				}
				if seg.Operating != nil && seg.Operating.CarrierCode != "" {
					seg.Operating.AirlineName = resolve(carriers, seg.Operating.CarrierCode)
				}
			}
		}
		if len(offer.ValidatingAirlineCodes) > 0 {
			names := make([]string, len(offer.ValidatingAirlineCodes))
			for i, code := range offer.ValidatingAirlineCodes {
				names[i] = resolve(carriers, code)
			}
			offer.ValidatingAirlineNames = names
		}
	}
}

// FormatDuration turns an ISO-8601 style PT{h}H{m}M token into "{h}h {m}m".
// Absent components default to zero; anything unrecognizable becomes "0h 0m".
func FormatDuration(raw string) string {
	hours, minutes := "0", "0"
	if m := durationPattern.FindStringSubmatch(raw); m != nil {
		if m[1] != "" {
			hours = m[1]
		}
		if m[2] != "" {
			minutes = m[2]
		}
	}
	return hours + "h " + minutes + "m"
}

func parsePrice(total string) float64 {
	price, err := strconv.ParseFloat(total, 64)
	if err != nil {
		return 0
	}
	return price
}

func resolve(dictionary map[string]string, code string) string {
	if name, ok := dictionary[code]; ok {
		return name
	}
	return code
}
