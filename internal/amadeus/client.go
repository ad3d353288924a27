package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SameC137/flight-search/internal/models"
	"github.com/SameC137/flight-search/internal/ratelimit"
)

// Endpoint names used for rate limiting and error reporting.
const (
	EndpointOffers       = "flight-offers"
	EndpointDates        = "flight-dates"
	EndpointLocations    = "locations"
	EndpointPriceMetrics = "price-metrics"
)

type UpstreamError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream returned %d: %s", e.Endpoint, e.Status, e.Body)
}

// Client issues the four read-only queries against the upstream provider.
// Every call obtains a bearer token from the TokenCache, waits on the
// per-endpoint rate limiter and surfaces non-success responses as
// UpstreamError. No retries: a failed call is reported to the caller as is.
type Client struct {
	baseURL    string
	tokens     *TokenCache
	limiter    *ratelimit.EndpointLimiter
	httpClient *http.Client
}

func NewClient(baseURL string, tokens *TokenCache, limiter *ratelimit.EndpointLimiter) *Client {
	return &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		limiter:    limiter,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) SearchOffers(ctx context.Context, criteria models.SearchCriteria) (*OfferSearchResponse, error) {
	params := url.Values{}
	params.Set("originLocationCode", criteria.Origin)
	params.Set("destinationLocationCode", criteria.Destination)
	params.Set("departureDate", criteria.DepartureDate)
	params.Set("adults", strconv.Itoa(criteria.Adults))
	params.Set("currencyCode", criteria.Currency)
	if criteria.Children > 0 {
		params.Set("children", strconv.Itoa(criteria.Children))
	}

	var resp OfferSearchResponse
	if err := c.get(ctx, EndpointOffers, "/v2/shopping/flight-offers", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchDates fetches the cheapest-date grid for a route. The duration hint
// is forwarded only for round-trip queries.
func (c *Client) SearchDates(ctx context.Context, origin, destination string, oneWay, nonStop bool, duration string) (*FlightDatesResponse, error) {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("oneWay", strconv.FormatBool(oneWay))
	params.Set("nonStop", strconv.FormatBool(nonStop))
	if duration != "" && !oneWay {
		params.Set("duration", duration)
	}

	var resp FlightDatesResponse
	if err := c.get(ctx, EndpointDates, "/v1/shopping/flight-dates", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SearchLocations(ctx context.Context, keyword string) (*LocationsResponse, error) {
	params := url.Values{}
	params.Set("subType", "CITY,AIRPORT")
	params.Set("keyword", keyword)

	var resp LocationsResponse
	if err := c.get(ctx, EndpointLocations, "/v1/reference-data/locations", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PriceMetrics queries historical price quartiles for a route. oneWay is true
// for an explicit one-way search or when no return date accompanies the
// request.
func (c *Client) PriceMetrics(ctx context.Context, origin, destination, departureDate, currency string, oneWay bool) (PriceMetricsResponse, error) {
	params := url.Values{}
	params.Set("originIataCode", origin)
	params.Set("destinationIataCode", destination)
	params.Set("departureDate", departureDate)
	params.Set("currencyCode", currency)
	params.Set("oneWay", strconv.FormatBool(oneWay))

	var resp PriceMetricsResponse
	if err := c.get(ctx, EndpointPriceMetrics, "/v1/analytics/itinerary-price-metrics", params, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, endpoint); err != nil {
			return err
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		upstreamErr := &UpstreamError{Endpoint: endpoint, Status: resp.StatusCode, Body: string(body)}
		log.Printf("Upstream %s error: %v", endpoint, upstreamErr)
		return upstreamErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}
