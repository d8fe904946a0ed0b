// README: Usage service tests with an in-memory counter store.
package usage

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type memCounters struct {
	counts    map[string]int
	locations map[string]string
	err       error
}

func newMemCounters() *memCounters {
	return &memCounters{counts: map[string]int{}, locations: map[string]string{}}
}

func (m *memCounters) Increment(_ context.Context, _ int64, key, location string, delta int) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.locations[key]; !ok {
		m.locations[key] = location
	}
	m.counts[key] += delta
	return nil
}

func (m *memCounters) ListByUser(_ context.Context, _ int64) ([]BuildingUsage, error) {
	out := []BuildingUsage{}
	for key, n := range m.counts {
		out = append(out, BuildingUsage{Location: m.locations[key], Count: n, UpdatedAt: time.Now()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}

func TestRecordFromJSON_CountsEveryStop(t *testing.T) {
	store := newMemCounters()
	svc := NewService(store)

	payload := []byte(`[
		{"schedule":[
			{"location":"Grainger Library"},
			{"location":"Illini Union"},
			{"location":"Grainger Library"}
		]},
		{"schedule":[{"location":"ECEB"}]}
	]`)
	if err := svc.RecordFromJSON(context.Background(), 7, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.counts["grainger library"] != 2 {
		t.Errorf("expected 2 grainger visits, got %d", store.counts["grainger library"])
	}
	if store.counts["illini union"] != 1 || store.counts["eceb"] != 1 {
		t.Errorf("unexpected tallies: %v", store.counts)
	}
}

func TestRecordFromJSON_CaseInsensitiveKeysKeepFirstSpelling(t *testing.T) {
	store := newMemCounters()
	svc := NewService(store)

	payload := []byte(`[{"schedule":[
		{"location":"Grainger Library"},
		{"location":"GRAINGER LIBRARY"},
		{"location":"grainger library"}
	]}]`)
	if err := svc.RecordFromJSON(context.Background(), 7, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.counts["grainger library"] != 3 {
		t.Errorf("case variants must share one counter, got %v", store.counts)
	}
	if store.locations["grainger library"] != "Grainger Library" {
		t.Errorf("first spelling must win, got %q", store.locations["grainger library"])
	}
}

func TestRecordFromJSON_IgnoresJunkShapes(t *testing.T) {
	store := newMemCounters()
	svc := NewService(store)

	for _, payload := range []string{
		`not json`,
		`{"object":"not a list"}`,
		`[{"schedule":"oops"}]`,
		`[{"schedule":[{"location":""},{"location":"   "}]}]`,
		`[]`,
	} {
		if err := svc.RecordFromJSON(context.Background(), 7, []byte(payload)); err != nil {
			t.Errorf("payload %q: walker must stay lenient, got %v", payload, err)
		}
	}
	if len(store.counts) != 0 {
		t.Errorf("junk payloads must not create counters: %v", store.counts)
	}
}

func TestRecordFromJSON_StoreErrorsPropagate(t *testing.T) {
	store := newMemCounters()
	store.err = errors.New("db down")
	svc := NewService(store)

	payload := []byte(`[{"schedule":[{"location":"ECEB"}]}]`)
	if err := svc.RecordFromJSON(context.Background(), 7, payload); err == nil {
		t.Error("expected the store error to propagate")
	}
}

func TestList_MostVisitedFirst(t *testing.T) {
	store := newMemCounters()
	svc := NewService(store)

	payload := []byte(`[{"schedule":[
		{"location":"ECEB"},
		{"location":"Grainger Library"},
		{"location":"Grainger Library"}
	]}]`)
	if err := svc.RecordFromJSON(context.Background(), 7, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Location != "Grainger Library" || got[0].Count != 2 {
		t.Errorf("expected grainger first with count 2, got %+v", got)
	}
}
