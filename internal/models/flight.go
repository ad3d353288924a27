package models

// Flight is the normalized view of one upstream offer. It is rebuilt from
// scratch on every search and never persisted.
type Flight struct {
	ID             string  `json:"id"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureAt    string  `json:"departure_at"`
	ArrivalAt      string  `json:"arrival_at"`
	Airline        string  `json:"airline"`
	Aircraft       string  `json:"aircraft,omitempty"`
	Stops          int     `json:"stops"`
	Duration       string  `json:"duration"`
	BookableSeats  int     `json:"bookable_seats,omitempty"`
	FormattedPrice string  `json:"formatted_price,omitempty"`
}
