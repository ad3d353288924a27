package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SameC137/flight-search/internal/amadeus"
	"github.com/SameC137/flight-search/internal/cache"
	"github.com/SameC137/flight-search/internal/calendar"
	"github.com/SameC137/flight-search/internal/filter"
	"github.com/SameC137/flight-search/internal/locations"
	"github.com/SameC137/flight-search/internal/models"
	"github.com/SameC137/flight-search/internal/normalizer"
	"github.com/SameC137/flight-search/pkg/currency"
)

type SearchHandler struct {
	client *amadeus.Client
	cache  cache.Cache
}

func NewSearchHandler(client *amadeus.Client, c cache.Cache) *SearchHandler {
	return &SearchHandler{
		client: client,
		cache:  c,
	}
}

// Search runs one offer search: validate, fetch, normalize, filter.
func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	criteria, err := bindCriteria(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := criteria.Validate(); err != nil {
		return writeError(c, err)
	}

	state, err := bindFilterState(c)
	if err != nil {
		return writeError(c, err)
	}

	var flights []models.Flight
	var dictionaries models.Dictionaries
	cacheHit := false

	if cached, found := h.cache.Get(ctx, criteria); found {
		flights = cached
		cacheHit = true
	} else {
		resp, err := h.client.SearchOffers(ctx, criteria)
		if err != nil {
			return writeError(c, err)
		}

		normalizer.Enrich(resp)
		result := normalizer.Normalize(resp)
		flights = result.Flights
		dictionaries = result.Dictionaries

		for i := range flights {
			flights[i].FormattedPrice = currency.Format(flights[i].Price, flights[i].Currency)
		}

		_ = h.cache.Set(ctx, criteria, flights)
	}

	filtered := filter.Apply(flights, state)

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchCriteria: criteria,
		Metadata: models.SearchMetadata{
			TotalResults: len(filtered),
			SearchTimeMs: time.Since(startTime).Milliseconds(),
			CacheHit:     cacheHit,
		},
		Flights:      filtered,
		Airlines:     filter.SummarizeByAirline(filtered),
		Dictionaries: dictionaries,
	})
}

// CalendarPrices returns the per-day minimum price index for a route.
func (h *SearchHandler) CalendarPrices(c echo.Context) error {
	ctx := c.Request().Context()

	origin := strings.ToUpper(c.QueryParam("origin"))
	destination := strings.ToUpper(c.QueryParam("destination"))
	if origin == "" || destination == "" {
		return writeError(c, models.ErrInvalidOrigin)
	}

	oneWay := c.QueryParam("oneWay") == "true"
	nonStop := c.QueryParam("nonStop") == "true"
	duration := c.QueryParam("duration")

	resp, err := h.client.SearchDates(ctx, origin, destination, oneWay, nonStop, duration)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, models.CalendarResponse{
		Origin:      origin,
		Destination: destination,
		OneWay:      oneWay,
		Prices:      calendar.MinPriceByDate(resp.Data),
	})
}

// Locations searches airports by keyword, grouped by city.
func (h *SearchHandler) Locations(c echo.Context) error {
	ctx := c.Request().Context()

	keyword := c.QueryParam("keyword")
	if len(keyword) < locations.MinKeywordLength {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "keyword must be at least 2 characters",
			Code:    http.StatusBadRequest,
		})
	}

	resp, err := h.client.SearchLocations(ctx, keyword)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"keyword": keyword,
		"groups":  locations.GroupByCity(resp.Data),
	})
}

// History proxies the price-metrics query. One-way is taken from the explicit
// flag when present, otherwise a search without a return date is one-way.
func (h *SearchHandler) History(c echo.Context) error {
	ctx := c.Request().Context()

	origin := strings.ToUpper(c.QueryParam("origin"))
	destination := strings.ToUpper(c.QueryParam("destination"))
	date := c.QueryParam("date")
	if origin == "" || destination == "" || date == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "origin, destination and date are required",
			Code:    http.StatusBadRequest,
		})
	}

	currencyCode := c.QueryParam("currency")
	if currencyCode == "" {
		currencyCode = "USD"
	}

	var oneWay bool
	if raw := c.QueryParam("oneWay"); raw != "" {
		oneWay = raw == "true"
	} else {
		oneWay = c.QueryParam("returnDate") == ""
	}

	resp, err := h.client.PriceMetrics(ctx, origin, destination, date, currencyCode, oneWay)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func bindCriteria(c echo.Context) (models.SearchCriteria, error) {
	criteria := models.SearchCriteria{
		Origin:        strings.ToUpper(c.QueryParam("origin")),
		Destination:   strings.ToUpper(c.QueryParam("destination")),
		DepartureDate: c.QueryParam("date"),
		Adults:        1,
		Children:      0,
		Currency:      "USD",
	}

	if raw := c.QueryParam("adults"); raw != "" {
		adults, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, models.ErrInvalidAdults
		}
		criteria.Adults = adults
	}
	if raw := c.QueryParam("children"); raw != "" {
		children, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, models.ErrInvalidChildren
		}
		criteria.Children = children
	}
	if raw := c.QueryParam("currency"); raw != "" {
		criteria.Currency = strings.ToUpper(raw)
	}
	if raw := c.QueryParam("returnDate"); raw != "" {
		criteria.ReturnDate = &raw
	}
	if raw := c.QueryParam("oneWay"); raw != "" {
		criteria.OneWay = raw == "true"
	} else {
		criteria.OneWay = criteria.ReturnDate == nil
	}

	return criteria, nil
}

func bindFilterState(c echo.Context) (models.FilterState, error) {
	var state models.FilterState

	if raw := c.QueryParam("priceCeiling"); raw != "" {
		ceiling, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return state, models.ValidationError("priceCeiling must be a number")
		}
		state.PriceCeiling = ceiling
	}
	if raw := c.QueryParam("maxStops"); raw != "" && raw != "any" {
		maxStops, err := strconv.Atoi(raw)
		if err != nil {
			return state, models.ValidationError("maxStops must be a number or \"any\"")
		}
		state.MaxStops = &maxStops
	}
	if raw := c.QueryParam("airlines"); raw != "" {
		state.Airlines = strings.Split(raw, ",")
	}

	return state, nil
}

func writeError(c echo.Context, err error) error {
	var validationErr models.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	var authErr *amadeus.AuthenticationError
	if errors.As(err, &authErr) {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "authentication_error",
			Message: authErr.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	var upstreamErr *amadeus.UpstreamError
	if errors.As(err, &upstreamErr) {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: upstreamErr.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "search_error",
		Message: err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
