// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"uipathfinder/internal/config"
	httptransport "uipathfinder/internal/http"
	"uipathfinder/internal/infra"
	"uipathfinder/internal/llm"
	"uipathfinder/internal/modules/history"
	"uipathfinder/internal/modules/schedule"
	"uipathfinder/internal/modules/usage"
	"uipathfinder/internal/modules/user"
	"uipathfinder/internal/routing"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier infra.TokenVerifier
	if cfg.Auth.Domain != "" {
		verifier, err = infra.NewAuth0Verifier(cfg.Auth.Domain, cfg.Auth.Audience)
		if err != nil {
			log.Fatalf("auth0 init: %v", err)
		}
	} else {
		log.Printf("AUTH0_DOMAIN not set; all requests are treated as guest")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	userStore := user.NewStore(dbPool)
	historyStore := history.NewStore(dbPool)
	usageStore := usage.NewStore(dbPool)
	if err := userStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("users schema: %v", err)
	}
	if err := historyStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("histories schema: %v", err)
	}
	if err := usageStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("building_usage schema: %v", err)
	}

	userSvc := user.NewService(userStore)
	historySvc := history.NewService(historyStore)
	usageSvc := usage.NewService(usageStore)

	invokers := map[string]llm.ChatInvoker{
		schedule.ProviderFireworks: llm.NewFireworksClient(cfg.LLM.FireworksKey, cfg.LLM.FireworksBaseURL),
	}
	targets := schedule.DefaultTargets()
	if cfg.LLM.GeminiKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.LLM.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		invokers[schedule.ProviderGemini] = gemini
		targets = append(targets, schedule.ModelTarget{
			ID:        len(targets) + 1,
			ModelID:   "gemini-2.0-flash",
			ModelName: "Gemini 2.0 Flash",
			Provider:  schedule.ProviderGemini,
		})
	}

	var routeProvider routing.Provider
	switch cfg.Routing.Provider {
	case "google":
		g, err := routing.NewGoogleRouteService(cfg.Routing.GoogleMapsKey)
		if err != nil {
			log.Fatalf("google maps init: %v", err)
		}
		routeProvider = g
	default:
		routeProvider = routing.NewOSRMClient(cfg.Routing.OSRMBaseURL)
	}
	routeProvider = routing.NewCachedProvider(routeProvider, redisClient)

	scheduleSvc := schedule.NewService(invokers, routeProvider, targets, cfg.LLM.MaxTokens)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Verifier: verifier,
		Users:    userSvc,
		Schedule: scheduleSvc,
		History:  historySvc,
		Usage:    usageSvc,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
