package models

// Product holds everything the extraction engine could recover from a
// single product page. Optional fields are nil when the matching heuristic
// missed; slices are empty, never nil, so the JSON output stays stable.
type Product struct {
	Name           *string              `json:"name,omitempty"`
	InStock        bool                 `json:"in_stock"`
	CurrentPrice   *int                 `json:"current_price,omitempty"`
	OriginalPrice  *int                 `json:"original_price,omitempty"`
	ProductID      *string              `json:"product_id,omitempty"`
	ShareURL       string               `json:"share_url"`
	Rating         *float64             `json:"rating,omitempty"`
	FAssured       bool                 `json:"f_assured"`
	Highlights     []string             `json:"highlights"`
	Seller         *Seller              `json:"seller,omitempty"`
	Thumbnails     []string             `json:"thumbnails"`
	Offers         []Offer              `json:"offers"`
	Specifications []SpecificationGroup `json:"specifications"`
}

func NewProduct() *Product {
	return &Product{
		Highlights:     make([]string, 0),
		Thumbnails:     make([]string, 0),
		Offers:         make([]Offer, 0),
		Specifications: make([]SpecificationGroup, 0),
	}
}

// Seller is the primary seller shown on an in-stock product page.
type Seller struct {
	Name   string   `json:"name"`
	Rating *float64 `json:"rating,omitempty"`
}

// Offer is one entry of the "Available offers" block. Category is nil when
// the offer text carries no leading category label.
type Offer struct {
	Category    *string `json:"category,omitempty"`
	Description string  `json:"description"`
}

// Specification is a single name/value row of a specification table.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SpecificationGroup is one captioned specification table, for example
// "General" or "Display Features".
type SpecificationGroup struct {
	Category       string          `json:"category"`
	Specifications []Specification `json:"specifications"`
}

// SearchResult is one product card from a search results page.
type SearchResult struct {
	Name          string `json:"product_name"`
	Link          string `json:"product_link"`
	Thumbnail     string `json:"thumbnail"`
	CurrentPrice  *int   `json:"current_price,omitempty"`
	OriginalPrice *int   `json:"original_price,omitempty"`
}

// ProductSearch is the outcome of resolving one free-text query. Results keep
// document order, which is the source's own relevance order.
type ProductSearch struct {
	Query    string         `json:"query"`
	QueryURL string         `json:"query_url"`
	Results  []SearchResult `json:"results"`
}
