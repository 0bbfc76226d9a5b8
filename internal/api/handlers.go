package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"flipkart-scraper/internal/models"
	"flipkart-scraper/internal/scraper"
)

// Scraper is the engine surface the API depends on.
type Scraper interface {
	Product(ctx context.Context, url string) (*models.Product, error)
	Search(ctx context.Context, query string) (*models.ProductSearch, error)
}

type Handlers struct {
	scraper Scraper
	logger  *slog.Logger
}

func NewHandlers(scraper Scraper, logger *slog.Logger) *Handlers {
	return &Handlers{
		scraper: scraper,
		logger:  logger,
	}
}

// GetProduct handles GET /api/v1/product?url=<product url>.
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		h.respondError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	product, err := h.scraper.Product(r.Context(), rawURL)
	if err != nil {
		h.respondScrapeError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, product)
}

// GetSearch handles GET /api/v1/search?q=<query>.
func (h *Handlers) GetSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.respondError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	search, err := h.scraper.Search(r.Context(), query)
	if err != nil {
		h.respondScrapeError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, search)
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondScrapeError maps the engine's error taxonomy onto status codes, so
// callers can tell "no such product" from "host is unavailable".
func (h *Handlers) respondScrapeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, scraper.ErrInvalidURL),
		errors.Is(err, scraper.ErrUnsupportedDomain),
		errors.Is(err, scraper.ErrEmptyQuery):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, scraper.ErrProductNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, scraper.ErrHostUnavailable):
		h.respondError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("scrape failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "failed to fetch page")
	}
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
