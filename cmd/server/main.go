package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/comparanote/backend/config"
	httpDelivery "github.com/comparanote/backend/internal/delivery/http"
	"github.com/comparanote/backend/internal/infrastructure/cache"
	"github.com/comparanote/backend/internal/infrastructure/gemini"
	"github.com/comparanote/backend/internal/infrastructure/postgres"
	"github.com/comparanote/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ComparaNote Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Model: %s", cfg.Gemini.Model)

	ctx := context.Background()

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	geminiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
		RPS:     cfg.Gemini.RPS,
		Burst:   cfg.Gemini.Burst,
	})
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		geminiClient.SetDebug(true)
		log.Printf("Gemini client debug mode enabled")
	}
	log.Printf("Gemini API configured: %s (key: %s)", cfg.Gemini.Model, cfg.Gemini.MaskedKey())

	pool, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	catalogStore := postgres.NewCatalogStore(pool)

	// Initialize usecase layer
	enrichmentService := usecase.NewEnrichmentService(
		geminiClient,
		memoryCache,
		usecase.EnrichmentServiceConfig{CacheTTL: cfg.Cache.TTL},
	)
	catalogService := usecase.NewCatalogService(catalogStore)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(enrichmentService, catalogService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Local development keeps its secrets in .env
	_ = godotenv.Load()

	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
