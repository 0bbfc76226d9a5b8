// Package scraper recovers structured product records from rendered HTML.
// The target site exposes no stable API, so every field is located by
// positional and textual heuristics over the document tree; a heuristic that
// misses leaves its field empty instead of failing the operation.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"flipkart-scraper/internal/config"
	"flipkart-scraper/internal/dom"
	"flipkart-scraper/internal/models"
)

// Fetcher is the network collaborator. It owns headers, TLS, timeouts and
// politeness; the engine only consumes the raw body text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Service resolves product URLs and search queries into records. It holds no
// cross-call state besides collaborators, so concurrent use is safe.
type Service struct {
	fetcher    Fetcher
	logger     *slog.Logger
	metrics    *Metrics
	base       *url.URL
	domain     string
	searchPath string
}

func NewService(fetcher Fetcher, cfg config.ScraperConfig, logger *slog.Logger, metrics *Metrics) (*Service, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}
	return &Service{
		fetcher:    fetcher,
		logger:     logger,
		metrics:    metrics,
		base:       base,
		domain:     cfg.Domain,
		searchPath: cfg.SearchPath,
	}, nil
}

// Product fetches one product page and extracts its record. Only off-domain
// input, transport failures and known failure-page signatures abort; every
// field-level miss degrades to an absent value.
func (s *Service) Product(ctx context.Context, rawURL string) (*models.Product, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		s.metrics.IncPage("product", errorLabel(ErrInvalidURL))
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Hostname() == "" || !strings.Contains(parsed.Hostname(), s.domain) {
		s.metrics.IncPage("product", errorLabel(ErrUnsupportedDomain))
		return nil, ErrUnsupportedDomain
	}

	log := s.logger.With(
		slog.String("scrape_id", uuid.NewString()),
		slog.String("url", parsed.String()),
	)

	start := time.Now()
	body, err := s.fetcher.Fetch(ctx, parsed.String())
	if err != nil {
		s.metrics.IncPage("product", errorLabel(err))
		return nil, err
	}
	if err := checkBodySignatures(body); err != nil {
		s.metrics.IncPage("product", errorLabel(err))
		log.Warn("failure signature in page body", slog.Any("error", err))
		return nil, err
	}

	doc, err := dom.Parse(body)
	if err != nil {
		s.metrics.IncPage("product", "parse_error")
		return nil, fmt.Errorf("parse document: %w", err)
	}

	product := extractProduct(doc, body, parsed.String())
	s.recordProductMisses(product)
	s.metrics.IncPage("product", "ok")
	s.metrics.ObserveDuration(time.Since(start))

	log.Info("product extracted",
		slog.Bool("in_stock", product.InStock),
		slog.Bool("has_price", product.CurrentPrice != nil),
		slog.Int("highlights", len(product.Highlights)),
		slog.Int("offers", len(product.Offers)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return product, nil
}

// recordProductMisses counts fields whose heuristic found nothing. Stock-gated
// fields are only counted on in-stock pages, where they were actually sought.
func (s *Service) recordProductMisses(p *models.Product) {
	if p.Name == nil {
		s.metrics.IncFieldMiss("name")
	}
	if p.ProductID == nil {
		s.metrics.IncFieldMiss("product_id")
	}
	if len(p.Thumbnails) == 0 {
		s.metrics.IncFieldMiss("thumbnails")
	}
	if len(p.Highlights) == 0 {
		s.metrics.IncFieldMiss("highlights")
	}
	if len(p.Specifications) == 0 {
		s.metrics.IncFieldMiss("specifications")
	}
	if !p.InStock {
		return
	}
	if p.CurrentPrice == nil {
		s.metrics.IncFieldMiss("current_price")
	}
	if p.Rating == nil {
		s.metrics.IncFieldMiss("rating")
	}
	if p.Seller == nil {
		s.metrics.IncFieldMiss("seller")
	}
	if len(p.Offers) == 0 {
		s.metrics.IncFieldMiss("offers")
	}
}
