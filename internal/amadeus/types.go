package amadeus

// Raw upstream record shapes. Only the documented fields are decoded; the
// rest of each record is ignored.

type OfferSearchResponse struct {
	Data         []Offer      `json:"data"`
	Dictionaries Dictionaries `json:"dictionaries"`
}

type Dictionaries struct {
	Carriers map[string]string `json:"carriers"`
	Aircraft map[string]string `json:"aircraft"`
}

type Offer struct {
	ID                     string      `json:"id"`
	Price                  Price       `json:"price"`
	Itineraries            []Itinerary `json:"itineraries"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
	NumberOfBookableSeats  int         `json:"numberOfBookableSeats"`

	// Filled in by normalization, not by the upstream.
	ValidatingAirlineNames []string `json:"validatingAirlineNames,omitempty"`
}

type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	CarrierCode string            `json:"carrierCode"`
	Aircraft    Aircraft          `json:"aircraft"`
	Departure   SegmentEndpoint   `json:"departure"`
	Arrival     SegmentEndpoint   `json:"arrival"`
	Operating   *OperatingCarrier `json:"operating,omitempty"`

	AirlineName string `json:"airlineName,omitempty"`
}

type Aircraft struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

type SegmentEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type OperatingCarrier struct {
	CarrierCode string `json:"carrierCode"`
	AirlineName string `json:"airlineName,omitempty"`
}

type FlightDatesResponse struct {
	Data []FlightDate `json:"data"`
}

type FlightDate struct {
	Type          string `json:"type"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Price         Price  `json:"price"`
}

type LocationsResponse struct {
	Data []Location `json:"data"`
}

type Location struct {
	Type         string  `json:"type"`
	SubType      string  `json:"subType"`
	Name         string  `json:"name"`
	DetailedName string  `json:"detailedName"`
	ID           string  `json:"id"`
	IataCode     string  `json:"iataCode"`
	Address      Address `json:"address"`
}

type Address struct {
	CityName    string `json:"cityName"`
	CityCode    string `json:"cityCode"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`
}

// PriceMetricsResponse is returned verbatim to the caller, so the payload is
// kept as a raw document rather than decoded field by field.
type PriceMetricsResponse map[string]interface{}
