package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"uipathfinder/internal/config"
	"uipathfinder/internal/llm"
	"uipathfinder/internal/modules/schedule"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.LLM.FireworksKey == "" {
		log.Fatal("FIREWORKS_API_KEY environment variable not set")
	}

	ctx := context.Background()
	client := llm.NewFireworksClient(cfg.LLM.FireworksKey, cfg.LLM.FireworksBaseURL)

	svc := schedule.NewService(
		map[string]llm.ChatInvoker{schedule.ProviderFireworks: client},
		nil,
		schedule.DefaultTargets(),
		cfg.LLM.MaxTokens,
	)

	cmd := schedule.GenerateCommand{
		UserRequest: "I want a productive day with a long study block and good coffee.",
		TargetDate:  time.Now().Format("2006-01-02"),
	}
	fmt.Printf("Request: %s\n\n", cmd.UserRequest)

	results := svc.Generate(ctx, cmd)
	for _, r := range results {
		fmt.Printf("== %s (%s) ==\n", r.ModelName, r.Status)
		fmt.Printf("Reason: %s\n", r.Reason)
		if out, err := json.MarshalIndent(r.Schedule, "", "  "); err == nil {
			fmt.Printf("%s\n\n", out)
		}
	}
}
