package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SameC137/flight-search/internal/amadeus"
	"github.com/SameC137/flight-search/internal/cache"
	"github.com/SameC137/flight-search/internal/models"
)

const offersPayload = `{
	"data": [
		{
			"id": "1",
			"price": {"total": "120.00", "currency": "USD"},
			"numberOfBookableSeats": 3,
			"itineraries": [{
				"duration": "PT5H30M",
				"segments": [{
					"carrierCode": "DL",
					"aircraft": {"code": "321"},
					"departure": {"iataCode": "JFK", "at": "2026-09-10T08:00:00"},
					"arrival": {"iataCode": "LAX", "at": "2026-09-10T11:30:00"}
				}]
			}]
		},
		{
			"id": "2",
			"price": {"total": "450.00", "currency": "USD"},
			"itineraries": [{
				"duration": "PT9H0M",
				"segments": [
					{"carrierCode": "UA", "departure": {"iataCode": "JFK", "at": "2026-09-10T06:00:00"}, "arrival": {"iataCode": "ORD", "at": "2026-09-10T08:00:00"}},
					{"carrierCode": "UA", "departure": {"iataCode": "ORD", "at": "2026-09-10T09:00:00"}, "arrival": {"iataCode": "LAX", "at": "2026-09-10T11:00:00"}}
				]
			}]
		}
	],
	"dictionaries": {"carriers": {"DL": "DELTA AIR LINES", "UA": "UNITED AIRLINES"}, "aircraft": {"321": "AIRBUS A321"}}
}`

func newTestHandler(t *testing.T, upstream http.HandlerFunc) *SearchHandler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":1799}`))
	})
	mux.HandleFunc("/", upstream)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	tokens := amadeus.NewTokenCache(srv.URL+"/v1/security/oauth2/token", "id", "secret", srv.Client())
	client := amadeus.NewClient(srv.URL, tokens, nil)
	return NewSearchHandler(client, cache.NewNoOpCache())
}

func doRequest(t *testing.T, h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestSearch_NormalizesAndSummarizes(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(offersPayload))
	})

	rec := doRequest(t, h.Search, "/api/v1/flights/search?origin=jfk&destination=lax&date=2026-09-10&oneWay=true")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Flights, 2)
	assert.Equal(t, "DELTA AIR LINES", resp.Flights[0].Airline)
	assert.Equal(t, "AIRBUS A321", resp.Flights[0].Aircraft)
	assert.Equal(t, "5h 30m", resp.Flights[0].Duration)
	assert.Equal(t, "$120.00", resp.Flights[0].FormattedPrice)
	assert.Equal(t, 0, resp.Flights[0].Stops)
	assert.Equal(t, 1, resp.Flights[1].Stops)

	require.Len(t, resp.Airlines, 2)
	assert.Equal(t, "DELTA AIR LINES", resp.Airlines[0].Airline)
	assert.Equal(t, 120.0, resp.Airlines[0].Avg)

	assert.Equal(t, "DELTA AIR LINES", resp.Dictionaries.Carriers["DL"])
	assert.Equal(t, 2, resp.Metadata.TotalResults)
	assert.False(t, resp.Metadata.CacheHit)
}

func TestSearch_FilterParamsApplied(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(offersPayload))
	})

	rec := doRequest(t, h.Search, "/api/v1/flights/search?origin=JFK&destination=LAX&date=2026-09-10&oneWay=true&priceCeiling=300&maxStops=0")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Flights, 1)
	assert.Equal(t, "1", resp.Flights[0].ID)
}

func TestSearch_ValidationFailsBeforeAnyNetworkCall(t *testing.T) {
	called := false
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := doRequest(t, h.Search, "/api/v1/flights/search?origin=J&destination=LAX&date=2026-09-10")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error)
}

func TestSearch_UpstreamFailureReported(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"errors":[{"title":"boom"}]}`))
	})

	rec := doRequest(t, h.Search, "/api/v1/flights/search?origin=JFK&destination=LAX&date=2026-09-10&oneWay=true")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "upstream_error", resp.Error)
	assert.Contains(t, resp.Message, "boom")
}

func TestSearch_EmptyResultIsSuccessNotError(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[],"dictionaries":{}}`))
	})

	rec := doRequest(t, h.Search, "/api/v1/flights/search?origin=JFK&destination=LAX&date=2026-09-10&oneWay=true")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Flights)
	assert.Equal(t, 0, resp.Metadata.TotalResults)
}

func TestCalendarPrices_AggregatesMinimumPerDay(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/shopping/flight-dates", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[
			{"departureDate":"2024-06-01","price":{"total":"120"}},
			{"departureDate":"2024-06-01","price":{"total":"95"}},
			{"departureDate":"2024-06-02","price":{"total":"200"}}
		]}`))
	})

	rec := doRequest(t, h.CalendarPrices, "/api/v1/flights/dates?origin=MAD&destination=MUC&oneWay=false")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CalendarResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, map[string]float64{"2024-06-01": 95, "2024-06-02": 200}, resp.Prices)
}

func TestLocations_RejectsShortKeyword(t *testing.T) {
	called := false
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := doRequest(t, h.Locations, "/api/v1/locations/search?keyword=l")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestLocations_GroupsAirportsByCity(t *testing.T) {
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"subType":"CITY","name":"LONDON","address":{"cityName":"LONDON","countryName":"UNITED KINGDOM"}},
			{"subType":"AIRPORT","name":"HEATHROW","iataCode":"LHR","address":{"cityName":"LONDON","countryName":"UNITED KINGDOM"}}
		]}`))
	})

	rec := doRequest(t, h.Locations, "/api/v1/locations/search?keyword=lond")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Keyword string `json:"keyword"`
		Groups  []struct {
			City  string `json:"city"`
			Label string `json:"label"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "LONDON, UNITED KINGDOM", resp.Groups[0].Label)
}

func TestHistory_OneWayDerivedFromReturnDate(t *testing.T) {
	var gotOneWay string
	h := newTestHandler(t, func(w http.ResponseWriter, r *http.Request) {
		gotOneWay = r.URL.Query().Get("oneWay")
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	doRequest(t, h.History, "/api/v1/history?origin=JFK&destination=LAX&date=2026-09-10")
	assert.Equal(t, "true", gotOneWay)

	doRequest(t, h.History, "/api/v1/history?origin=JFK&destination=LAX&date=2026-09-10&returnDate=2026-09-20")
	assert.Equal(t, "false", gotOneWay)

	// An explicit flag wins over the return-date heuristic.
	doRequest(t, h.History, "/api/v1/history?origin=JFK&destination=LAX&date=2026-09-10&returnDate=2026-09-20&oneWay=true")
	assert.Equal(t, "true", gotOneWay)
}
