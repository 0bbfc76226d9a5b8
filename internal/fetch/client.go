// Package fetch is the network collaborator of the extraction engine. It
// issues plain GET requests with a fixed, browser-like header set and hands
// the raw body back to the scraper untouched.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"flipkart-scraper/internal/config"
	"flipkart-scraper/internal/ratelimit"
)

type Client struct {
	http    *http.Client
	limiter ratelimit.Limiter
	logger  *slog.Logger

	userAgent      string
	acceptLanguage string
	accept         string
}

func NewClient(cfg config.ClientConfig, logger *slog.Logger) *Client {
	return &Client{
		http:           &http.Client{Timeout: cfg.Timeout},
		limiter:        ratelimit.NewJittered(cfg.DelayMin, cfg.DelayMax),
		logger:         logger,
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
		accept:         cfg.Accept,
	}
}

// Fetch issues a GET request and returns the response body as text. The body
// is returned for every status code; the caller decides what a failure body
// looks like.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", c.acceptLanguage)
	req.Header.Set("Accept", c.accept)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", url, err)
	}

	c.logger.Debug("page fetched",
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return string(body), nil
}
