package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/comparanote/backend/internal/domain"
)

// Package-level compiled regex patterns for cache key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// EnrichmentServiceConfig holds configuration for the enrichment service
type EnrichmentServiceConfig struct {
	CacheTTL time.Duration
}

// EnrichmentService runs the enrichment pipeline: build the prompt, query
// the inference provider, extract the JSON payload and normalize each
// candidate. Results are cached per query so repeated admin searches do not
// re-bill the provider.
type EnrichmentService struct {
	inference domain.InferenceClient
	cache     domain.CacheRepository
	cacheTTL  time.Duration
}

// NewEnrichmentService creates a new enrichment service with dependencies
func NewEnrichmentService(
	inference domain.InferenceClient,
	cache domain.CacheRepository,
	config EnrichmentServiceConfig,
) *EnrichmentService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &EnrichmentService{
		inference: inference,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Enrich looks up AI-suggested configurations for a product name.
// Flow: validate -> check cache -> prompt -> inference -> extract -> normalize -> cache
func (s *EnrichmentService) Enrich(ctx context.Context, productName string) ([]domain.NormalizedProduct, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return nil, fmt.Errorf("%w: missing productName", domain.ErrInvalidRequest)
	}
	if s.inference == nil {
		// The credential detail stays server-side; callers only see a
		// generic configuration error.
		return nil, domain.ErrNotConfigured
	}

	cacheKey := s.generateCacheKey(productName)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		log.Printf("[ENRICH] cache hit for %q (%d products)", productName, len(cached))
		return cached, nil
	}

	prompt := BuildEnrichmentPrompt(productName)
	raw, err := s.inference.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInferenceFailure, err)
	}

	candidates, err := ExtractCandidates(raw)
	if err != nil {
		return nil, err
	}

	products := make([]domain.NormalizedProduct, 0, len(candidates))
	for i := range candidates {
		products = append(products, *NormalizeCandidate(&candidates[i]))
	}
	log.Printf("[ENRICH] normalized %d candidates for %q", len(products), productName)

	if err := s.setInCache(ctx, cacheKey, products); err != nil {
		log.Printf("[ENRICH] cache store failed: %v", err)
	}

	return products, nil
}

// generateCacheKey creates a normalized cache key from the query.
// Format: "enrich:{normalized_product_name}"
func (s *EnrichmentService) generateCacheKey(productName string) string {
	normalized := strings.ToLower(productName)
	normalized = nonAlphanumericRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	return "enrich:" + strings.TrimSpace(normalized)
}

func (s *EnrichmentService) getFromCache(ctx context.Context, key string) ([]domain.NormalizedProduct, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var products []domain.NormalizedProduct
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return products, nil
}

func (s *EnrichmentService) setInCache(ctx context.Context, key string, products []domain.NormalizedProduct) error {
	if s.cache == nil {
		return nil
	}
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}
