package models

type SearchMetadata struct {
	TotalResults int   `json:"total_results"`
	SearchTimeMs int64 `json:"search_time_ms"`
	CacheHit     bool  `json:"cache_hit"`
}

type AirlinePriceSummary struct {
	Airline string  `json:"airline"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Avg     float64 `json:"avg"`
}

// Dictionaries are the per-response code lookup tables forwarded alongside
// the normalized flights. They are only valid for the response they came
// with; codes are not stable across upstream calls.
type Dictionaries struct {
	Carriers map[string]string `json:"carriers"`
	Aircraft map[string]string `json:"aircraft"`
}

type SearchResponse struct {
	SearchCriteria SearchCriteria        `json:"search_criteria"`
	Metadata       SearchMetadata        `json:"metadata"`
	Flights        []Flight              `json:"flights"`
	Airlines       []AirlinePriceSummary `json:"airlines,omitempty"`
	Dictionaries   Dictionaries          `json:"dictionaries"`
}

type CalendarResponse struct {
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	OneWay      bool               `json:"one_way"`
	Prices      map[string]float64 `json:"prices"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
