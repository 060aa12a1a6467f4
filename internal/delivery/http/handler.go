package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comparanote/backend/internal/domain"
)

// EnrichmentService is the slice of the usecase layer the enrich endpoint
// depends on.
type EnrichmentService interface {
	Enrich(ctx context.Context, productName string) ([]domain.NormalizedProduct, error)
}

// CatalogService is the slice of the usecase layer the catalog endpoints
// depend on.
type CatalogService interface {
	List(ctx context.Context, filter domain.NotebookFilter) ([]domain.Notebook, error)
	Get(ctx context.Context, id int64) (*domain.Notebook, error)
	Create(ctx context.Context, nb *domain.Notebook) (*domain.Notebook, error)
	Update(ctx context.Context, nb *domain.Notebook) error
	Delete(ctx context.Context, id int64) error
	ReplaceOffers(ctx context.Context, notebookID int64, offers []domain.Offer) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	enrichment EnrichmentService
	catalog    CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(enrichment EnrichmentService, catalog CatalogService) *Handler {
	return &Handler{enrichment: enrichment, catalog: catalog}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "comparanote-backend",
		"version": "1.0.0",
	})
}

// EnrichProduct runs the AI enrichment pipeline for a product name and
// returns the normalized suggestions.
func (h *Handler) EnrichProduct(c *gin.Context) {
	if h.enrichment == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "enrichment not available"})
		return
	}

	var req domain.EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'productName' in request body"})
		return
	}

	products, err := h.enrichment.Enrich(c.Request.Context(), req.ProductName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// ListNotebooks returns catalog entries matching the query-string filters.
func (h *Handler) ListNotebooks(c *gin.Context) {
	filter, err := parseNotebookFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notebooks, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if notebooks == nil {
		notebooks = []domain.Notebook{}
	}

	c.JSON(http.StatusOK, notebooks)
}

// GetNotebook returns one catalog entry.
func (h *Handler) GetNotebook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	nb, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, nb)
}

// CreateNotebook stores a new catalog entry with its offers.
func (h *Handler) CreateNotebook(c *gin.Context) {
	var nb domain.Notebook
	if err := c.ShouldBindJSON(&nb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notebook payload"})
		return
	}

	created, err := h.catalog.Create(c.Request.Context(), &nb)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateNotebook overwrites an existing catalog entry.
func (h *Handler) UpdateNotebook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var nb domain.Notebook
	if err := c.ShouldBindJSON(&nb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notebook payload"})
		return
	}
	nb.ID = id

	if err := h.catalog.Update(c.Request.Context(), &nb); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteNotebook removes a catalog entry and its offers.
func (h *Handler) DeleteNotebook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ReplaceOffers swaps the full offer set of a notebook, the way the admin
// panel saves: old rows out, submitted rows in.
func (h *Handler) ReplaceOffers(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var offers []domain.Offer
	if err := c.ShouldBindJSON(&offers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offers payload"})
		return
	}

	if err := h.catalog.ReplaceOffers(c.Request.Context(), id, offers); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notebook id"})
		return 0, false
	}
	return id, true
}

// respondError maps domain errors to the response contract: caller mistakes
// get 400, unknown entities 404, everything else 500 with the detail logged
// server-side only.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotebookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "notebook not found"})
	case errors.Is(err, domain.ErrNotConfigured):
		log.Printf("[HTTP] enrichment invoked without provider credential")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "enrichment is temporarily unavailable"})
	case errors.Is(err, domain.ErrMalformedResponse):
		log.Printf("[HTTP] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI response could not be parsed"})
	case errors.Is(err, domain.ErrInferenceFailure):
		log.Printf("[HTTP] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inference provider request failed"})
	default:
		log.Printf("[HTTP] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
