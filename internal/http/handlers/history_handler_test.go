// README: HTTP tests for history and building-usage endpoints.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"uipathfinder/internal/http/handlers"
	httpmiddleware "uipathfinder/internal/http/middleware"
	"uipathfinder/internal/infra"
	"uipathfinder/internal/modules/history"
	"uipathfinder/internal/modules/usage"
	"uipathfinder/internal/modules/user"
)

// stubTokenVerifier is a test double for infra.TokenVerifier.
type stubTokenVerifier struct {
	token *infra.AuthToken
	err   error
}

func (s *stubTokenVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.AuthToken, error) {
	return s.token, s.err
}

// memAccounts is an in-memory user.Accounts.
type memAccounts struct {
	users  map[string]*user.User
	nextID int64
}

func newMemAccounts() *memAccounts {
	return &memAccounts{users: map[string]*user.User{}, nextID: 1}
}

func (m *memAccounts) FindOrCreate(_ context.Context, sub, email, name string) (*user.User, error) {
	if u, ok := m.users[sub]; ok {
		return u, nil
	}
	u := &user.User{ID: m.nextID, Auth0Sub: sub, Email: email, Name: name, CreatedAt: time.Now()}
	m.nextID++
	m.users[sub] = u
	return u, nil
}

// memRecords is an in-memory history.Records.
type memRecords struct {
	rows   []history.History
	nextID int64
}

func newMemRecords() *memRecords { return &memRecords{nextID: 1} }

func (m *memRecords) Insert(_ context.Context, h *history.History) error {
	h.ID = m.nextID
	m.nextID++
	h.CreatedAt = time.Now()
	m.rows = append(m.rows, *h)
	return nil
}

func (m *memRecords) ListByUser(_ context.Context, userID int64, limit, offset int) ([]history.History, error) {
	out := []history.History{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	if offset >= len(out) {
		return []history.History{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRecords) GetByID(_ context.Context, id int64) (*history.History, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			h := m.rows[i]
			return &h, nil
		}
	}
	return nil, history.ErrNotFound
}

func (m *memRecords) Delete(_ context.Context, id, userID int64) error {
	for i := range m.rows {
		if m.rows[i].ID == id && m.rows[i].UserID == userID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return history.ErrNotFound
}

// memCounters is an in-memory usage.Counters.
type memCounters struct {
	counts map[string]int
}

func newMemCounters() *memCounters { return &memCounters{counts: map[string]int{}} }

func (m *memCounters) Increment(_ context.Context, _ int64, key, _ string, delta int) error {
	m.counts[key] += delta
	return nil
}

func (m *memCounters) ListByUser(_ context.Context, _ int64) ([]usage.BuildingUsage, error) {
	out := []usage.BuildingUsage{}
	for key, n := range m.counts {
		out = append(out, usage.BuildingUsage{Location: key, Count: n})
	}
	return out, nil
}

type testEnv struct {
	router   *gin.Engine
	counters *memCounters
}

func buildTestRouter(verifier infra.TokenVerifier) testEnv {
	gin.SetMode(gin.TestMode)
	counters := newMemCounters()
	users := user.NewService(newMemAccounts())
	histories := history.NewService(newMemRecords())
	usageSvc := usage.NewService(counters)

	r := gin.New()
	r.Use(httpmiddleware.Auth(verifier))
	h := handlers.NewHistoryHandler(users, histories, usageSvc)
	r.POST("/api/histories", h.Create)
	r.GET("/api/histories", h.List)
	r.GET("/api/histories/:id", h.Get)
	r.DELETE("/api/histories/:id", h.Delete)
	uh := handlers.NewUsageHandler(users, usageSvc)
	r.GET("/api/building-usage", uh.List)
	return testEnv{router: r, counters: counters}
}

func doRequest(r *gin.Engine, method, path string, body any, authHeader string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func savePayload() map[string]any {
	return map[string]any{
		"userRequest":   "plan my day",
		"requestedDate": "2026-04-01",
		"pathOptions": []map[string]any{
			{"id": 1, "title": "A", "schedule": []map[string]any{
				{"time": "09:00", "location": "Grainger Library", "activity": "Study"},
			}},
		},
	}
}

func TestCreateHistory_GuestAllowed(t *testing.T) {
	env := buildTestRouter(&stubTokenVerifier{})
	w := doRequest(env.router, http.MethodPost, "/api/histories", savePayload(), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool            `json:"success"`
		History history.History `json:"history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if !resp.Success || resp.History.ID == 0 {
		t.Errorf("expected a saved history, got %+v", resp)
	}
	if resp.History.Title != "plan my day" {
		t.Errorf("title must default to the request, got %q", resp.History.Title)
	}
}

func TestCreateHistory_SubtitleAndDateRoundTrip(t *testing.T) {
	env := buildTestRouter(&stubTokenVerifier{})
	payload := savePayload()
	payload["title"] = "Museum day"
	payload["subtitle"] = "with a study block"

	w := doRequest(env.router, http.MethodPost, "/api/histories", payload, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		History history.History `json:"history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.History.Subtitle != "with a study block" {
		t.Errorf("subtitle must round-trip, got %q", resp.History.Subtitle)
	}
	if resp.History.TargetDate != "2026-04-01" {
		t.Errorf("requestedDate must round-trip, got %q", resp.History.TargetDate)
	}

	// The JSON wire names follow the frontend contract.
	raw := w.Body.String()
	if !strings.Contains(raw, `"subtitle"`) || !strings.Contains(raw, `"requestedDate"`) {
		t.Errorf("expected subtitle and requestedDate keys in %s", raw)
	}
}

func TestCreateHistory_MissingFields(t *testing.T) {
	env := buildTestRouter(&stubTokenVerifier{})
	w := doRequest(env.router, http.MethodPost, "/api/histories", map[string]any{"userRequest": "x"}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without pathOptions, got %d", w.Code)
	}
}

func TestCreateHistory_BumpsUsageCounters(t *testing.T) {
	env := buildTestRouter(&stubTokenVerifier{})
	w := doRequest(env.router, http.MethodPost, "/api/histories", savePayload(), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if env.counters.counts["grainger library"] != 1 {
		t.Errorf("expected a counter bump for grainger, got %v", env.counters.counts)
	}
}

func TestHistories_ScopedToCaller(t *testing.T) {
	verifier := &stubTokenVerifier{token: &infra.AuthToken{Subject: "auth0|alice"}}
	env := buildTestRouter(verifier)

	// Alice saves a run; the guest saves another.
	if w := doRequest(env.router, http.MethodPost, "/api/histories", savePayload(), "Bearer t"); w.Code != http.StatusCreated {
		t.Fatalf("alice save failed: %d", w.Code)
	}
	if w := doRequest(env.router, http.MethodPost, "/api/histories", savePayload(), ""); w.Code != http.StatusCreated {
		t.Fatalf("guest save failed: %d", w.Code)
	}

	w := doRequest(env.router, http.MethodGet, "/api/histories", nil, "Bearer t")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Histories []history.History `json:"histories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Histories) != 1 {
		t.Errorf("alice must only see her own run, got %d", len(resp.Histories))
	}
}

func TestGetHistory_CrossUserReadsAsNotFound(t *testing.T) {
	verifier := &stubTokenVerifier{token: &infra.AuthToken{Subject: "auth0|alice"}}
	env := buildTestRouter(verifier)

	w := doRequest(env.router, http.MethodPost, "/api/histories", savePayload(), "Bearer t")
	if w.Code != http.StatusCreated {
		t.Fatalf("save failed: %d", w.Code)
	}
	var resp struct {
		History history.History `json:"history"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	// Guest tries to read Alice's history; the id must not be revealed as
	// existing.
	w = doRequest(env.router, http.MethodGet, fmt.Sprintf("/api/histories/%d", resp.History.ID), nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cross-user read, got %d", w.Code)
	}
}

func TestGetHistory_BadID(t *testing.T) {
	env := buildTestRouter(&stubTokenVerifier{})
	for _, id := range []string{"abc", "-1", "0"} {
		w := doRequest(env.router, http.MethodGet, "/api/histories/"+id, nil, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", id, w.Code)
		}
	}
}

func TestDeleteHistory_Lifecycle(t *testing.T) {
	env := buildTestRouter(&stubTokenVerifier{})

	w := doRequest(env.router, http.MethodPost, "/api/histories", savePayload(), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("save failed: %d", w.Code)
	}
	var resp struct {
		History history.History `json:"history"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	id := resp.History.ID

	if w := doRequest(env.router, http.MethodDelete, fmt.Sprintf("/api/histories/%d", id), nil, ""); w.Code != http.StatusOK {
		t.Errorf("delete failed: %d", w.Code)
	}
	if w := doRequest(env.router, http.MethodGet, fmt.Sprintf("/api/histories/%d", id), nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestBuildingUsage_ListsCounters(t *testing.T) {
	env := buildTestRouter(&stubTokenVerifier{})

	if w := doRequest(env.router, http.MethodPost, "/api/histories", savePayload(), ""); w.Code != http.StatusCreated {
		t.Fatalf("save failed: %d", w.Code)
	}

	w := doRequest(env.router, http.MethodGet, "/api/building-usage", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Usage []usage.BuildingUsage `json:"usage"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp.Usage) != 1 || resp.Usage[0].Count != 1 {
		t.Errorf("unexpected usage payload: %+v", resp.Usage)
	}
}
