package scraper

import (
	"net/url"
	"strings"

	"flipkart-scraper/internal/dom"
	"flipkart-scraper/internal/models"
)

// The page bootstrap state lives in an inline script. It is not guaranteed
// to be well-formed JSON at the points of interest, so both fields are
// recovered by marker-based substring slicing, never by a JSON parser.
const (
	stateMarkerPrefix = "window.__INITIAL_STATE__"
	productIDMarker   = "productId"
	shareLinkMarker   = "product.share.pp"
)

// extractEmbeddedState recovers the product ID and canonical share URL from
// the first bootstrap script that yields a valid link. Scanning stops at the
// first valid share link; the caller applies the request-URL fallback when no
// script yields one.
func extractEmbeddedState(doc *dom.Document, p *models.Product) {
	for _, script := range doc.Select("script") {
		text := script.Text()
		if !strings.HasPrefix(text, stateMarkerPrefix) {
			continue
		}

		if p.ProductID == nil {
			if _, after, ok := strings.Cut(text, productIDMarker); ok {
				after = strings.Trim(strings.TrimSpace(after), `":`)
				if id, _, ok := strings.Cut(after, `"`); ok {
					p.ProductID = &id
				}
			}
		}

		if idx := strings.LastIndex(text, shareLinkMarker); idx >= 0 {
			tail := text[idx+len(shareLinkMarker):]
			tail = strings.TrimLeft(tail, `": `)
			link, _, _ := strings.Cut(tail, `"`)
			if parsed, err := url.Parse(link); err == nil && parsed.IsAbs() && parsed.Host != "" {
				p.ShareURL = parsed.String()
				return
			}
		}
	}
}
