// Fetches a single product page and prints the extracted record as JSON.
//
// Usage: product <product-url>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"flipkart-scraper/internal/config"
	"flipkart-scraper/internal/fetch"
	"flipkart-scraper/internal/scraper"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: product <product-url>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Logging.SlogLevel(),
	}))

	client := fetch.NewClient(cfg.Client, logger)
	service, err := scraper.NewService(client, cfg.Scraper, logger, scraper.NewMetrics())
	if err != nil {
		logger.Error("failed to build scraper service", "error", err)
		os.Exit(1)
	}

	product, err := service.Product(context.Background(), os.Args[1])
	if err != nil {
		logger.Error("fetch failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(product, "", "  ")
	if err != nil {
		logger.Error("failed to encode product", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
