package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/comparanote/backend/internal/domain"
)

// CatalogService exposes curation of the notebook catalog: filtered listing
// for the storefront and CRUD for the admin panel.
type CatalogService struct {
	repo domain.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo domain.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// List returns catalog entries matching the filter, offers included.
func (s *CatalogService) List(ctx context.Context, filter domain.NotebookFilter) ([]domain.Notebook, error) {
	switch filter.Sort {
	case "", "created_desc", "price_asc", "price_desc":
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidRequest, filter.Sort)
	}
	return s.repo.List(ctx, filter)
}

// Get returns one catalog entry by id.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Notebook, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new notebook together with its offers. The repository
// persists both in a single transaction.
func (s *CatalogService) Create(ctx context.Context, nb *domain.Notebook) (*domain.Notebook, error) {
	if err := validateNotebook(nb); err != nil {
		return nil, err
	}
	nb.Offers = completeOffers(nb.Offers)

	id, err := s.repo.Create(ctx, nb)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Update overwrites a notebook's fields. Offers are managed separately via
// ReplaceOffers, mirroring the admin save flow.
func (s *CatalogService) Update(ctx context.Context, nb *domain.Notebook) error {
	if err := validateNotebook(nb); err != nil {
		return err
	}
	return s.repo.Update(ctx, nb)
}

// Delete removes a notebook and, via the schema's cascade, its offers.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ReplaceOffers swaps a notebook's full offer set. The admin panel always
// saves the complete list, so the previous rows are discarded first.
func (s *CatalogService) ReplaceOffers(ctx context.Context, notebookID int64, offers []domain.Offer) error {
	if _, err := s.repo.Get(ctx, notebookID); err != nil {
		return err
	}
	return s.repo.ReplaceOffers(ctx, notebookID, completeOffers(offers))
}

func validateNotebook(nb *domain.Notebook) error {
	if nb == nil || strings.TrimSpace(nb.Name) == "" {
		return fmt.Errorf("%w: missing notebook name", domain.ErrInvalidRequest)
	}
	if nb.Price != nil && *nb.Price < 0 {
		return fmt.Errorf("%w: negative price", domain.ErrInvalidRequest)
	}
	return nil
}

// completeOffers keeps only offers with store, price and URL filled in, the
// same rule the admin form applies before saving.
func completeOffers(in []domain.Offer) []domain.Offer {
	out := make([]domain.Offer, 0, len(in))
	for _, o := range in {
		if strings.TrimSpace(o.StoreName) == "" || o.Price == nil || strings.TrimSpace(o.URL) == "" {
			continue
		}
		if *o.Price < 0 {
			continue
		}
		out = append(out, o)
	}
	return out
}
