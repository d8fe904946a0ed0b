// README: Smoke test cases; includes HTTP, DB, Redis, and performance checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "FAIL", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "DB: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				for _, table := range []string{"users", "histories", "building_usage"} {
					var exists bool
					err := r.db.QueryRow(ctx, `SELECT EXISTS (
						SELECT 1 FROM information_schema.tables WHERE table_name = $1
					)`, table).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table " + table}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "HTTP: health",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, _, err := r.get(ctx, base+"/health")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "HTTP: hello",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, body, err := r.get(ctx, base+"/api/hello")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK || !bytes.Contains(body, []byte("Hello")) {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "HTTP: history lifecycle",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				payload := map[string]any{
					"userRequest":   "bench run",
					"requestedDate": time.Now().Format("2006-01-02"),
					"pathOptions": []map[string]any{{
						"id": 1, "title": "bench",
						"schedule": []map[string]any{{"time": "09:00", "location": "Grainger Library", "activity": "bench"}},
					}},
				}
				status, body, err := r.post(ctx, base+"/api/histories", payload)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusCreated {
					return Result{Status: "FAIL", Note: fmt.Sprintf("create status %d", status)}
				}
				var created struct {
					History struct {
						ID int64 `json:"id"`
					} `json:"history"`
				}
				if err := json.Unmarshal(body, &created); err != nil || created.History.ID == 0 {
					return Result{Status: "FAIL", Note: "no id in create response"}
				}

				id := created.History.ID
				if status, _, err = r.get(ctx, fmt.Sprintf("%s/api/histories/%d", base, id)); err != nil || status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("get status %d err %v", status, err)}
				}
				if status, err = r.delete(ctx, fmt.Sprintf("%s/api/histories/%d", base, id)); err != nil || status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("delete status %d err %v", status, err)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "HTTP: building usage",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, _, err := r.get(ctx, base+"/api/building-usage")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "HTTP: llm-schedules validation",
			Run: func(ctx context.Context, r *Runner) Result {
				status, _, err := r.post(ctx, base+"/api/llm-schedules", map[string]any{"date": "2026-01-01"})
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusBadRequest {
					return Result{Status: "FAIL", Note: fmt.Sprintf("expected 400, got %d", status)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "HTTP: llm-schedules live fan-out",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.WithLLM {
					return Result{Status: "SKIP", Note: "with-llm=false"}
				}
				start := time.Now()
				status, body, err := r.post(ctx, base+"/api/llm-schedules", map[string]any{
					"userRequest": "Plan a short study afternoon.",
					"date":        time.Now().Format("2006-01-02"),
				})
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status %d", status)}
				}
				var resp struct {
					Options []struct {
						Schedule []any `json:"schedule"`
					} `json:"options"`
				}
				if err := json.Unmarshal(body, &resp); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if len(resp.Options) == 0 {
					return Result{Status: "FAIL", Note: "no options in response"}
				}
				for i, opt := range resp.Options {
					if len(opt.Schedule) == 0 {
						return Result{Status: "FAIL", Note: fmt.Sprintf("option %d has empty schedule", i)}
					}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "Perf: hello throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration)
				defer cancel()

				var ok, bad int64
				var wg sync.WaitGroup
				for i := 0; i < r.cfg.Concurrency; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						for ctx.Err() == nil {
							status, _, err := r.get(ctx, base+"/api/hello")
							if err != nil || status != http.StatusOK {
								if ctx.Err() == nil {
									atomic.AddInt64(&bad, 1)
								}
								continue
							}
							atomic.AddInt64(&ok, 1)
						}
					}()
				}
				wg.Wait()

				if ok == 0 {
					return Result{Status: "FAIL", Note: "no successful requests"}
				}
				rps := float64(ok) / r.cfg.Duration.Seconds()
				return Result{Status: "PASS", Note: fmt.Sprintf("%.0f req/s, %d errors", rps, bad)}
			},
		},
	}
}

func (r *Runner) get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, nil
}

func (r *Runner) post(ctx context.Context, url string, payload any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, nil
}

func (r *Runner) delete(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
