package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/comparanote/backend/internal/domain"
)

// fakeInference returns a canned response and counts invocations.
type fakeInference struct {
	response string
	err      error
	calls    int
}

func (f *fakeInference) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeCache is a minimal map-backed CacheRepository.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return nil, domain.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestEnrichmentService_Enrich(t *testing.T) {
	inference := &fakeInference{
		response: `[{"name":"Acer Nitro 5","gpu_details":"NVIDIA GeForce RTX 4060, 8GB GDDR6, 115W TGP"}]`,
	}
	service := NewEnrichmentService(inference, newFakeCache(), EnrichmentServiceConfig{})

	products, err := service.Enrich(context.Background(), "Acer Nitro 5")
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("len(products) = %d, want 1", len(products))
	}
	if products[0].Name != "Acer Nitro 5" {
		t.Errorf("Name = %q, want Acer Nitro 5", products[0].Name)
	}
	if products[0].GPUBrand != "NVIDIA" {
		t.Errorf("GPUBrand = %q, want NVIDIA (normalizer must run)", products[0].GPUBrand)
	}
	if products[0].TGPDetectado == nil || *products[0].TGPDetectado != 115 {
		t.Errorf("TGPDetectado = %v, want 115", products[0].TGPDetectado)
	}
}

func TestEnrichmentService_Enrich_EmptyQuery(t *testing.T) {
	service := NewEnrichmentService(&fakeInference{}, newFakeCache(), EnrichmentServiceConfig{})

	_, err := service.Enrich(context.Background(), "   ")
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
}

func TestEnrichmentService_Enrich_NoClientConfigured(t *testing.T) {
	service := NewEnrichmentService(nil, newFakeCache(), EnrichmentServiceConfig{})

	_, err := service.Enrich(context.Background(), "Dell G15")
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestEnrichmentService_Enrich_ProviderFailure(t *testing.T) {
	inference := &fakeInference{err: errors.New("endpoint unreachable")}
	service := NewEnrichmentService(inference, newFakeCache(), EnrichmentServiceConfig{})

	_, err := service.Enrich(context.Background(), "Dell G15")
	if !errors.Is(err, domain.ErrInferenceFailure) {
		t.Errorf("error = %v, want ErrInferenceFailure", err)
	}
}

func TestEnrichmentService_Enrich_MalformedResponse(t *testing.T) {
	inference := &fakeInference{response: "I could not find that notebook."}
	service := NewEnrichmentService(inference, newFakeCache(), EnrichmentServiceConfig{})

	_, err := service.Enrich(context.Background(), "Dell G15")
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestEnrichmentService_Enrich_CachesByQuery(t *testing.T) {
	inference := &fakeInference{response: `[{"name":"Lenovo LOQ"}]`}
	service := NewEnrichmentService(inference, newFakeCache(), EnrichmentServiceConfig{CacheTTL: time.Minute})

	for i := 0; i < 3; i++ {
		products, err := service.Enrich(context.Background(), "Lenovo LOQ")
		if err != nil {
			t.Fatalf("Enrich() call %d error = %v", i+1, err)
		}
		if len(products) != 1 || products[0].Name != "Lenovo LOQ" {
			t.Fatalf("call %d returned unexpected products: %+v", i+1, products)
		}
	}

	if inference.calls != 1 {
		t.Errorf("inference calls = %d, want 1 (later lookups served from cache)", inference.calls)
	}

	// Punctuation and casing variants hit the same cache entry.
	if _, err := service.Enrich(context.Background(), "  lenovo, LOQ!  "); err != nil {
		t.Fatalf("Enrich() variant error = %v", err)
	}
	if inference.calls != 1 {
		t.Errorf("inference calls = %d, want 1 after normalized-variant lookup", inference.calls)
	}
}

func TestBuildEnrichmentPrompt(t *testing.T) {
	prompt := BuildEnrichmentPrompt("Acer Nitro V 15")

	if !containsAll(prompt, []string{
		`"Acer Nitro V 15"`,
		"cpu_details",
		"gpu_series",
		"tgp_detectado",
		"keyboard_type_feature",
		"array de objetos JSON",
	}) {
		t.Errorf("prompt is missing required schema fields or the query:\n%s", prompt)
	}
}

func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
