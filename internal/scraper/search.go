package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"flipkart-scraper/internal/dom"
	"flipkart-scraper/internal/models"
)

// sponsoredMarker replaces the real product name on promoted cards; the name
// then lives in the following text node.
const sponsoredMarker = "Sponsored"

// Search resolves a free-text query into the cards of a single results page,
// in document order. Cards that yield no link or name are dropped silently.
func (s *Service) Search(ctx context.Context, query string) (*models.ProductSearch, error) {
	if strings.TrimSpace(query) == "" {
		s.metrics.IncPage("search", errorLabel(ErrEmptyQuery))
		return nil, ErrEmptyQuery
	}

	queryURL := s.searchURL(query)
	start := time.Now()

	body, err := s.fetcher.Fetch(ctx, queryURL)
	if err != nil {
		s.metrics.IncPage("search", errorLabel(err))
		return nil, err
	}
	if err := checkBodySignatures(body); err != nil {
		s.metrics.IncPage("search", errorLabel(err))
		return nil, err
	}

	doc, err := dom.Parse(body)
	if err != nil {
		s.metrics.IncPage("search", "parse_error")
		return nil, fmt.Errorf("parse document: %w", err)
	}

	results := extractSearchResults(doc, s.base)
	s.metrics.IncPage("search", "ok")
	s.metrics.ObserveDuration(time.Since(start))

	s.logger.Info("search extracted",
		slog.String("query", query),
		slog.Int("results", len(results)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return &models.ProductSearch{
		Query:    query,
		QueryURL: queryURL,
		Results:  results,
	}, nil
}

func (s *Service) searchURL(query string) string {
	u := *s.base
	u.Path = s.searchPath
	u.RawQuery = url.Values{"q": {query}}.Encode()
	return u.String()
}

func extractSearchResults(doc *dom.Document, base *url.URL) []models.SearchResult {
	cards := doc.Select("[data-id]")
	if len(cards) == 0 {
		cards = legacyLayoutCards(doc)
	}

	results := make([]models.SearchResult, 0, len(cards))
	for _, card := range cards {
		if result, ok := extractCard(card, base); ok {
			results = append(results, result)
		}
	}
	return results
}

// legacyLayoutCards handles result pages without per-card identifier
// attributes. The "Showing N results" label sits in a header row; the class
// list of the header's next element sibling identifies the repeated card
// containers, which are re-selected from the shared parent.
func legacyLayoutCards(doc *dom.Document) []*dom.Node {
	for _, span := range doc.Select("span") {
		leading := strings.TrimSpace(span.FirstText())
		if !strings.HasPrefix(leading, "Showing") || !strings.HasSuffix(leading, "results") {
			continue
		}

		header := span.Parent()
		if header == nil {
			return nil
		}
		sibling := header.NextSibling()
		for sibling != nil && !sibling.IsElement() {
			sibling = sibling.NextSibling()
		}
		if sibling == nil {
			return nil
		}

		classAttr, _ := sibling.Attr("class")
		selector := dom.ClassSelectorFrom(classAttr)
		if selector.Empty() {
			return nil
		}
		container := header.Parent()
		if container == nil {
			return nil
		}
		return container.Select(selector.String())
	}
	return nil
}

// extractCard pulls one result entry out of a card element. A card must
// yield at minimum a link and a name; anything less drops it without failing
// the search.
func extractCard(card *dom.Node, base *url.URL) (models.SearchResult, bool) {
	link := card.First("a")
	if link == nil {
		return models.SearchResult{}, false
	}
	href, _ := link.Attr("href")
	absolute := absoluteLink(base, href)
	if absolute == "" {
		return models.SearchResult{}, false
	}

	name := cardName(card, link)
	if name == "" {
		return models.SearchResult{}, false
	}

	thumbnail := ""
	if img := card.First("img"); img != nil {
		thumbnail, _ = img.Attr("src")
	}

	current, original := cardPrices(card)
	return models.SearchResult{
		Name:          name,
		Link:          absolute,
		Thumbnail:     thumbnail,
		CurrentPrice:  current,
		OriginalPrice: original,
	}, true
}

// cardName resolves the display name through the class list of the link's
// last element child; sponsored cards carry the real name in the following
// text node. Falls back to a second link's title attribute, then to the
// link's own text.
func cardName(card, link *dom.Node) string {
	if last := link.LastChildElement(); last != nil {
		if classAttr, ok := last.Attr("class"); ok {
			selector := dom.ClassSelectorFrom(classAttr)
			if !selector.Empty() {
				if el := card.First(selector.String()); el != nil {
					if name := nameFromTexts(el.Texts()); name != "" {
						return name
					}
				}
			}
		}
	}

	links := card.Select("a")
	if len(links) > 1 {
		if title, ok := links[1].Attr("title"); ok && title != "" {
			return title
		}
	}
	return strings.TrimSpace(link.Text())
}

func nameFromTexts(texts []string) string {
	if len(texts) == 0 {
		return ""
	}
	name := strings.TrimSpace(texts[0])
	if name != sponsoredMarker {
		return name
	}
	if len(texts) > 1 {
		return strings.TrimSpace(texts[1])
	}
	return ""
}

// cardPrices applies the product-page price heuristic within a single card.
func cardPrices(card *dom.Node) (current, original *int) {
	for _, el := range card.Select("div") {
		if original != nil {
			break
		}
		leading := strings.TrimSpace(el.FirstText())
		if !strings.HasPrefix(leading, currencyPrefix) {
			continue
		}
		current, original = consumePrices(el, current, original)
	}
	return current, original
}

func absoluteLink(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}
