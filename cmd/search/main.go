// Runs a product search and prints the result set as JSON.
//
// Usage: search <query terms...>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"flipkart-scraper/internal/config"
	"flipkart-scraper/internal/fetch"
	"flipkart-scraper/internal/scraper"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: search <query terms...>")
		os.Exit(2)
	}
	query := strings.Join(os.Args[1:], " ")

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

	search, err := service.Search(context.Background(), query)
	if err != nil {
		logger.Error("search failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(search, "", "  ")
	if err != nil {
		logger.Error("failed to encode results", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
