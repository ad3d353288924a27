package models

import (
	"regexp"
	"time"
)

var iataCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

const dateLayout = "2006-01-02"

type SearchCriteria struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date,omitempty"`
	Adults        int     `json:"adults"`
	Children      int     `json:"children"`
	Currency      string  `json:"currency"`
	OneWay        bool    `json:"one_way"`
}

func (c *SearchCriteria) Validate() error {
	if c.Adults == 0 {
		c.Adults = 1
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}

	if !iataCodePattern.MatchString(c.Origin) {
		return ErrInvalidOrigin
	}
	if !iataCodePattern.MatchString(c.Destination) {
		return ErrInvalidDestination
	}

	departure, err := time.Parse(dateLayout, c.DepartureDate)
	if err != nil {
		return ErrInvalidDepartureDate
	}

	if c.Adults < 1 || c.Adults > 9 {
		return ErrInvalidAdults
	}
	if c.Children < 0 || c.Children > 9 {
		return ErrInvalidChildren
	}

	if c.OneWay {
		if c.ReturnDate != nil && *c.ReturnDate != "" {
			return ErrReturnDateOnOneWay
		}
		c.ReturnDate = nil
		return nil
	}

	if c.ReturnDate != nil && *c.ReturnDate != "" {
		ret, err := time.Parse(dateLayout, *c.ReturnDate)
		if err != nil {
			return ErrInvalidReturnDate
		}
		if !ret.After(departure) {
			return ErrReturnBeforeDeparture
		}
	}

	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrInvalidOrigin         ValidationError = "origin must be a 3-letter IATA code"
	ErrInvalidDestination    ValidationError = "destination must be a 3-letter IATA code"
	ErrInvalidDepartureDate  ValidationError = "departure_date must be formatted as YYYY-MM-DD"
	ErrInvalidReturnDate     ValidationError = "return_date must be formatted as YYYY-MM-DD"
	ErrInvalidAdults         ValidationError = "adults must be between 1 and 9"
	ErrInvalidChildren       ValidationError = "children must be between 0 and 9"
	ErrReturnDateOnOneWay    ValidationError = "return_date is not allowed for one-way searches"
	ErrReturnBeforeDeparture ValidationError = "return_date must be after departure_date"
)

// FilterState narrows an already-normalized flight list. A nil MaxStops means
// any number of stops, an empty Airlines slice means all airlines.
type FilterState struct {
	PriceCeiling float64  `json:"price_ceiling"`
	MaxStops     *int     `json:"max_stops,omitempty"`
	Airlines     []string `json:"airlines,omitempty"`
}
