package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// InferenceClient defines the interface for the generative text provider.
// GenerateContent returns the raw text of the first candidate; extracting
// the JSON payload out of it is the caller's job.
type InferenceClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// NotebookFilter carries the predicates the catalog listing understands.
// Zero values mean "no constraint".
type NotebookFilter struct {
	CPUBrands          []string
	CPUIntelSeries     []string
	CPUIntelGeneration []int
	CPUAmdSeries       []string
	CPUAmdGeneration   []int
	CPUGHzMin          *float64
	CPUGHzMax          *float64

	GPUBrands []string
	GPUSeries []string

	RAMSizeGB        []int
	StorageGB        []int
	ScreenSizeInches []float64
	ScreenHz         []int
	ScreenPanelTypes []string
	KeyboardFeatures []string

	ScreenNitsMin *int
	ScreenNitsMax *int
	PriceMin      *float64
	PriceMax      *float64

	Sort string // "price_asc", "price_desc" or "" (newest first)
}

// CatalogRepository defines persistence for notebooks and their offers.
type CatalogRepository interface {
	List(ctx context.Context, filter NotebookFilter) ([]Notebook, error)
	Get(ctx context.Context, id int64) (*Notebook, error)
	Create(ctx context.Context, nb *Notebook) (int64, error)
	Update(ctx context.Context, nb *Notebook) error
	Delete(ctx context.Context, id int64) error
	ReplaceOffers(ctx context.Context, notebookID int64, offers []Offer) error
}
