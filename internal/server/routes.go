package server

import (
	"strings"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wordcharts/internal/handlers"
	"wordcharts/internal/handlers/api"
	"wordcharts/internal/pipeline"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(p *pipeline.Pipeline) {
	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(p, s.Cfg)
	probeHandler := handlers.NewProbeHandler(s.sessions)
	wordsHandler := api.NewWordsHandler(p)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Frontend routes
	s.App.Get("/", analyzeHandler.Index)
	s.App.Post("/cycle", analyzeHandler.Cycle)

	// JSON API, callable cross-origin without credentials
	apiGroup := s.App.Group("/api", cors.New(cors.Config{
		AllowOrigins: strings.Split(s.Cfg.CORSOrigins, ","),
		AllowMethods: []string{"GET", "OPTIONS"},
		MaxAge:       86400,
	}))
	apiGroup.Get("/words", wordsHandler.Words)
	apiGroup.Get("/chart", wordsHandler.Chart)
}
