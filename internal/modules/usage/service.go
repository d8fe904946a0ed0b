// README: Usage service: walk saved schedules and bump building counters.
package usage

import (
	"context"
	"encoding/json"
	"strings"
)

// Counters is the persistence surface the service needs.
type Counters interface {
	Increment(ctx context.Context, userID int64, key, location string, delta int) error
	ListByUser(ctx context.Context, userID int64) ([]BuildingUsage, error)
}

type Service struct {
	store Counters
}

func NewService(store Counters) *Service {
	return &Service{store: store}
}

// pathOption mirrors the subset of the saved payload the walker needs.
type pathOption struct {
	Schedule []struct {
		Location string `json:"location"`
	} `json:"schedule"`
}

// RecordFromJSON walks a saved pathOptions payload and bumps one counter per
// schedule stop. The payload is frontend JSON taken verbatim, so the walk is
// lenient: a shape that does not decode is simply skipped.
func (s *Service) RecordFromJSON(ctx context.Context, userID int64, pathOptions []byte) error {
	var opts []pathOption
	if err := json.Unmarshal(pathOptions, &opts); err != nil {
		return nil
	}

	// Collapse duplicates within one payload so the store sees one
	// increment per location.
	type entry struct {
		location string
		count    int
	}
	tally := map[string]*entry{}
	order := []string{}
	for _, opt := range opts {
		for _, stop := range opt.Schedule {
			loc := strings.TrimSpace(stop.Location)
			if loc == "" {
				continue
			}
			key := strings.ToLower(loc)
			if e, ok := tally[key]; ok {
				e.count++
				continue
			}
			tally[key] = &entry{location: loc, count: 1}
			order = append(order, key)
		}
	}

	for _, key := range order {
		e := tally[key]
		if err := s.store.Increment(ctx, userID, key, e.location, e.count); err != nil {
			return err
		}
	}
	return nil
}

// List returns the user's counters, most visited first.
func (s *Service) List(ctx context.Context, userID int64) ([]BuildingUsage, error) {
	return s.store.ListByUser(ctx, userID)
}
