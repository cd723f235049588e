package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"wordcharts/internal/config"
	"wordcharts/internal/metrics"
	"wordcharts/internal/pipeline"
	"wordcharts/internal/server"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(cfg.Logger(os.Stderr))

	// Optional YAML overrides
	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Build the analysis pipeline
	p, err := pipeline.FromConfig(cfg, yamlCfg, metrics.Init())
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}
	log.Printf("Pipeline ready (segmenter=%s, extract=%s)", cfg.Segmenter, cfg.ExtractMode)

	srv := server.New(cfg)
	srv.RegisterRoutes(p)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
