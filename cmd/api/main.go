package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/yt-earnings/internal/api"
	"github.com/yt-earnings/internal/config"
	"github.com/yt-earnings/internal/earnings"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var opts []api.Option
	if cfg.YouTubeEndpoint != "" {
		opts = append(opts, api.WithEndpoint(cfg.YouTubeEndpoint))
	}

	service := earnings.NewService(earnings.Options{
		Rates:   earnings.Rates{MinCPM: cfg.CPMMin, MaxCPM: cfg.CPMMax},
		Workers: cfg.CompareWorkers,
	})

	server := api.NewServer(cfg, service, api.NewSourceFactory(opts...))

	log.Printf("Default API key: %s, CPM range: %.2f-%.2f, compare workers: %d",
		cfg.MaskedAPIKey(), cfg.CPMMin, cfg.CPMMax, cfg.CompareWorkers)
	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.Start(cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
