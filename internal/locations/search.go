package locations

import (
	"context"
	"sync"
	"time"

	"github.com/SameC137/flight-search/internal/amadeus"
)

// MinKeywordLength is the shortest keyword that triggers an upstream lookup.
const MinKeywordLength = 2

const defaultDebounce = 300 * time.Millisecond

type Client interface {
	SearchLocations(ctx context.Context, keyword string) (*amadeus.LocationsResponse, error)
}

// CityGroup is a set of airports sharing a city, labeled for display.
type CityGroup struct {
	City     string             `json:"city"`
	Label    string             `json:"label"`
	Airports []amadeus.Location `json:"airports"`
}

// Searcher debounces keyword lookups: scheduling a new search cancels the
// previous pending one, so a burst of keystrokes issues at most one upstream
// request, for the final keyword. Only the latest search's result is ever
// delivered.
type Searcher struct {
	client Client
	delay  time.Duration

	mu      sync.Mutex
	pending *time.Timer
	seq     uint64
}

func NewSearcher(client Client, delay time.Duration) *Searcher {
	if delay <= 0 {
		delay = defaultDebounce
	}
	return &Searcher{client: client, delay: delay}
}

// Search schedules a debounced lookup for keyword and delivers the grouped
// result through apply. Keywords shorter than MinKeywordLength never reach
// the upstream: pending work is cancelled and an empty result is delivered
// immediately.
func (s *Searcher) Search(ctx context.Context, keyword string, apply func([]CityGroup, error)) {
	s.mu.Lock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if len(keyword) < MinKeywordLength {
		apply(nil, nil)
		return
	}

	timer := time.AfterFunc(s.delay, func() {
		resp, err := s.client.SearchLocations(ctx, keyword)

		s.mu.Lock()
		stale := seq != s.seq
		s.mu.Unlock()
		if stale {
			return
		}

		if err != nil {
			apply(nil, err)
			return
		}
		apply(GroupByCity(resp.Data), nil)
	})

	s.mu.Lock()
	if seq == s.seq {
		s.pending = timer
	} else {
		timer.Stop()
	}
	s.mu.Unlock()
}

// GroupByCity drops city-level entries, keeping airports only, and groups
// them by city name in first-seen order. The group label comes from the
// first airport in the group.
func GroupByCity(locs []amadeus.Location) []CityGroup {
	order := make([]string, 0)
	groups := make(map[string]*CityGroup)

	for _, loc := range locs {
		if loc.SubType != "AIRPORT" {
			continue
		}

		city := loc.Address.CityName
		group, ok := groups[city]
		if !ok {
			group = &CityGroup{
				City:  city,
				Label: city + ", " + loc.Address.CountryName,
			}
			groups[city] = group
			order = append(order, city)
		}
		group.Airports = append(group.Airports, loc)
	}

	result := make([]CityGroup, 0, len(order))
	for _, city := range order {
		result = append(result, *groups[city])
	}
	return result
}
