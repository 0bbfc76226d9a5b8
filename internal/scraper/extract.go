package scraper

import (
	_ "embed"
	"strconv"
	"strings"

	"flipkart-scraper/internal/dom"
	"flipkart-scraper/internal/models"
)

// starIconRaw is the reference src of the rating star icon. An element whose
// first image carries exactly this src holds the product rating as its
// leading text.
//
//go:embed star_icon_base64.txt
var starIconRaw string

var starIconSrc = strings.TrimSpace(starIconRaw)

// fAssuredIconFragment appears in the src of the f-assured badge image.
const fAssuredIconFragment = "fa_62673a.png"

const currencyPrefix = "₹"

// pageState tracks which one-shot field rules have already fired during the
// single forward pass. The flags are explicit so ordering and at-most-once
// behavior are visible in one place instead of hiding in field mutation.
type pageState struct {
	comingSoon bool
	inStock    bool

	highlightsDone bool
	offersDone     bool
	specsDone      bool
	ratingDone     bool
}

// fieldRule is one extraction heuristic evaluated against container elements
// in document order. applies gates the rule on page state; extract reports
// whether the element satisfied the rule.
type fieldRule struct {
	name    string
	applies func(st *pageState, p *models.Product) bool
	extract func(el *dom.Node, leading string, st *pageState, p *models.Product) bool
}

// fieldRules returns the ordered rule list for the container pass. Offers,
// rating, f-assured and prices are stock-gated: an out-of-stock page never
// populates them, even when a stray element would match.
func fieldRules() []fieldRule {
	return []fieldRule{
		{
			name: "highlights",
			applies: func(st *pageState, _ *models.Product) bool {
				return !st.highlightsDone
			},
			extract: extractHighlights,
		},
		{
			name: "offers",
			applies: func(st *pageState, _ *models.Product) bool {
				return st.inStock && !st.offersDone
			},
			extract: extractOffers,
		},
		{
			name: "specifications",
			applies: func(st *pageState, _ *models.Product) bool {
				return !st.specsDone
			},
			extract: extractSpecifications,
		},
		{
			name: "rating",
			applies: func(st *pageState, _ *models.Product) bool {
				return st.inStock && !st.ratingDone
			},
			extract: extractRating,
		},
		{
			name: "f_assured",
			applies: func(st *pageState, p *models.Product) bool {
				return st.inStock && p.CurrentPrice == nil
			},
			extract: extractFAssured,
		},
		{
			name: "price",
			applies: func(st *pageState, p *models.Product) bool {
				return st.inStock && p.OriginalPrice == nil
			},
			extract: extractPricePair,
		},
	}
}

// extractProduct assembles a product record from a parsed page. Every miss is
// soft: a failed heuristic leaves its field at the zero value and the pass
// moves on.
func extractProduct(doc *dom.Document, body, requestURL string) *models.Product {
	p := models.NewProduct()

	st := &pageState{comingSoon: strings.Contains(body, "Coming Soon")}
	st.inStock = !st.comingSoon && !strings.Contains(body, "currently out of stock")
	p.InStock = st.inStock

	extractTitle(doc, p)
	extractThumbnails(doc, p)
	if st.inStock {
		extractSeller(doc, p)
	}

	rules := fieldRules()
	for _, el := range doc.Select("div") {
		leading := strings.TrimSpace(el.FirstText())
		for _, rule := range rules {
			if !rule.applies(st, p) {
				continue
			}
			rule.extract(el, leading, st, p)
		}
	}

	extractEmbeddedState(doc, p)
	if p.ShareURL == "" {
		p.ShareURL = requestURL
	}

	return p
}

// extractTitle takes the first heading's text, falling back to the document
// title. Neither existing leaves the name absent.
func extractTitle(doc *dom.Document, p *models.Product) {
	heading := doc.First("h1")
	if heading == nil {
		heading = doc.First("title")
	}
	if heading == nil {
		return
	}
	name := heading.Text()
	p.Name = &name
}

// extractThumbnails finds the first unordered list holding only images (no
// caption text) and collects the image sources inside its items.
func extractThumbnails(doc *dom.Document, p *models.Product) {
	for _, list := range doc.Select("ul") {
		if strings.TrimSpace(list.Text()) != "" {
			continue
		}
		for _, item := range list.Select("li") {
			for _, img := range item.Select("img") {
				if src, ok := img.Attr("src"); ok {
					p.Thumbnails = append(p.Thumbnails, src)
				}
			}
		}
		if len(p.Thumbnails) > 0 {
			break
		}
	}
}

// extractSeller reads the seller block by its fixed identifier. The name
// comes from the first text of a nested inline element, falling back to the
// nested block's trimmed text; a rating parse failure is ignored.
func extractSeller(doc *dom.Document, p *models.Product) {
	el := doc.First("#sellerName")
	if el == nil {
		return
	}

	block := el.First("div")
	blockText := ""
	if block != nil {
		blockText = strings.TrimSpace(block.Text())
	}

	name := ""
	if span := el.First("span"); span != nil {
		name = span.FirstText()
	}
	if name == "" {
		name = blockText
	}
	if name == "" {
		return
	}

	seller := &models.Seller{Name: name}
	if rating, err := strconv.ParseFloat(blockText, 64); err == nil {
		seller.Rating = &rating
	}
	p.Seller = seller
}

func extractHighlights(el *dom.Node, leading string, st *pageState, p *models.Product) bool {
	if !strings.HasPrefix(leading, "Highlights") {
		return false
	}
	st.highlightsDone = true
	list := el.First("ul")
	if list == nil {
		return true
	}
	for _, item := range list.Select("li") {
		p.Highlights = append(p.Highlights, item.Text())
	}
	return true
}

func extractOffers(el *dom.Node, leading string, st *pageState, p *models.Product) bool {
	if !strings.HasPrefix(leading, "Available offers") {
		return false
	}
	st.offersDone = true
	for _, item := range el.Select("li") {
		span := item.First("span")
		if span == nil {
			continue
		}
		// The inline element's text is tentatively the category. It is only
		// kept when the next sibling is another inline element carrying the
		// description; otherwise it is reinterpreted as the description.
		category := span.Text()
		sibling := span.NextSibling()
		if sibling == nil {
			continue
		}
		if sibling.IsElement() && sibling.TagName() == "span" {
			first := sibling.FirstChild()
			if first == nil {
				continue
			}
			description, ok := first.TextData()
			if !ok {
				continue
			}
			p.Offers = append(p.Offers, models.Offer{Category: &category, Description: description})
			continue
		}
		p.Offers = append(p.Offers, models.Offer{Description: category})
	}
	return true
}

func extractSpecifications(el *dom.Node, leading string, st *pageState, p *models.Product) bool {
	if !strings.HasPrefix(leading, "Specifications") {
		return false
	}
	st.specsDone = true
	for _, table := range el.Select("table") {
		sibling := table.PrevSibling()
		if sibling == nil {
			continue
		}
		first := sibling.FirstChild()
		if first == nil {
			continue
		}
		// Tables whose preceding sibling doesn't lead with a text caption
		// have no resolvable category and are dropped entirely.
		category, ok := first.TextData()
		if !ok {
			continue
		}
		group := models.SpecificationGroup{
			Category:       category,
			Specifications: make([]models.Specification, 0),
		}
		for _, row := range table.Select("tr") {
			cells := row.Select("td")
			if len(cells) < 2 {
				continue
			}
			group.Specifications = append(group.Specifications, models.Specification{
				Name:  cells[0].Text(),
				Value: cells[1].Text(),
			})
		}
		p.Specifications = append(p.Specifications, group)
	}
	return true
}

func extractRating(el *dom.Node, leading string, st *pageState, p *models.Product) bool {
	img := el.First("img")
	if img == nil {
		return false
	}
	src, ok := img.Attr("src")
	if !ok || strings.TrimSpace(src) != starIconSrc {
		return false
	}
	st.ratingDone = true
	if rating, err := strconv.ParseFloat(leading, 64); err == nil {
		p.Rating = &rating
	}
	return true
}

func extractFAssured(el *dom.Node, _ string, _ *pageState, p *models.Product) bool {
	for _, img := range el.Select("img") {
		if src, ok := img.Attr("src"); ok && strings.Contains(src, fAssuredIconFragment) {
			p.FAssured = true
			return true
		}
	}
	return false
}

func extractPricePair(el *dom.Node, leading string, _ *pageState, p *models.Product) bool {
	if !strings.HasPrefix(leading, currencyPrefix) {
		return false
	}
	p.CurrentPrice, p.OriginalPrice = consumePrices(el, p.CurrentPrice, p.OriginalPrice)
	return true
}

// consumePrices scans the block children of a currency-prefixed container.
// The first parsable figure is the current price, the second the original
// price (defaulting to the current one when unparsable). Values carrying a
// second currency symbol are compound strings and skipped.
func consumePrices(el *dom.Node, current, original *int) (*int, *int) {
	for _, block := range el.Select("div") {
		text := strings.TrimSpace(block.Text())
		value, ok := strings.CutPrefix(text, currencyPrefix)
		if !ok {
			continue
		}
		if strings.Contains(value, currencyPrefix) {
			continue
		}
		var tag *int
		if parsed, err := strconv.Atoi(strings.ReplaceAll(value, ",", "")); err == nil {
			tag = &parsed
		}
		if current == nil {
			current = tag
			continue
		}
		if tag == nil {
			fallback := *current
			tag = &fallback
		}
		original = tag
		break
	}
	return current, original
}
