package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// searchPage lists five identifiable cards. The second one is promoted, the
// fourth names itself only through a link title, and the fifth carries a
// relative link.
func searchPage() string {
	return `<!DOCTYPE html>
<html><body>
<div data-id="P1"><a href="https://www.flipkart.com/acme-phone-x/p/itm1"><img src="https://img.example.com/p1.jpg"><div class="name-row">Acme Phone X</div></a><div class="prices"><div>₹10,999</div><div>₹12,999</div></div></div>
<div data-id="P2"><a href="https://www.flipkart.com/promo-phone/p/itm2"><img src="https://img.example.com/p2.jpg"><div class="name-row"><span>Sponsored</span>Promo Phone 5G</div></a><div class="prices"><div>₹8,499</div><div>₹9,999</div></div></div>
<div data-id="P3"><a href="https://www.flipkart.com/budget-phone/p/itm3"><div class="name-row">Budget Phone</div></a><div class="prices"><div>₹5,999</div></div></div>
<div data-id="P4"><a href="https://www.flipkart.com/titled/p/itm4"><img src="https://img.example.com/p4.jpg"></a><a href="https://www.flipkart.com/titled/p/itm4" title="Titled Phone">view</a></div>
<div data-id="P5"><a href="/relative-phone/p/itm5"><div class="name-row">Relative Phone</div></a></div>
</body></html>`
}

func TestSearchExtractsCards(t *testing.T) {
	fetcher := &fakeFetcher{body: searchPage()}
	service := newTestService(t, fetcher)

	search, err := service.Search(context.Background(), "phone")
	require.NoError(t, err)
	assert.Equal(t, "phone", search.Query)
	assert.Equal(t, "https://www.flipkart.com/search?q=phone", search.QueryURL)

	require.Len(t, search.Results, 5)

	first := search.Results[0]
	assert.Equal(t, "Acme Phone X", first.Name)
	assert.Equal(t, "https://www.flipkart.com/acme-phone-x/p/itm1", first.Link)
	assert.Equal(t, "https://img.example.com/p1.jpg", first.Thumbnail)
	require.NotNil(t, first.CurrentPrice)
	require.NotNil(t, first.OriginalPrice)
	assert.Equal(t, 10999, *first.CurrentPrice)
	assert.Equal(t, 12999, *first.OriginalPrice)

	sponsored := search.Results[1]
	assert.Equal(t, "Promo Phone 5G", sponsored.Name)
	require.NotNil(t, sponsored.CurrentPrice)
	assert.Equal(t, 8499, *sponsored.CurrentPrice)

	single := search.Results[2]
	assert.Equal(t, "Budget Phone", single.Name)
	assert.Empty(t, single.Thumbnail)
	require.NotNil(t, single.CurrentPrice)
	assert.Equal(t, 5999, *single.CurrentPrice)
	assert.Nil(t, single.OriginalPrice)

	titled := search.Results[3]
	assert.Equal(t, "Titled Phone", titled.Name)

	relative := search.Results[4]
	assert.Equal(t, "Relative Phone", relative.Name)
	assert.Equal(t, "https://www.flipkart.com/relative-phone/p/itm5", relative.Link)
}

func TestSearchQueryURLEncodesSpaces(t *testing.T) {
	fetcher := &fakeFetcher{body: `<html><body></body></html>`}
	service := newTestService(t, fetcher)

	search, err := service.Search(context.Background(), "phone case")
	require.NoError(t, err)
	assert.Equal(t, "https://www.flipkart.com/search?q=phone+case", search.QueryURL)
	assert.Equal(t, []string{"https://www.flipkart.com/search?q=phone+case"}, fetcher.urls)
	assert.Empty(t, search.Results)
}

func TestSearchRejectsBlankQueryBeforeFetching(t *testing.T) {
	fetcher := &fakeFetcher{}
	service := newTestService(t, fetcher)

	_, err := service.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Zero(t, fetcher.calls)
}

func TestSearchHostErrorSignature(t *testing.T) {
	fetcher := &fakeFetcher{body: `<html><body>Internal Server Error</body></html>`}
	service := newTestService(t, fetcher)

	_, err := service.Search(context.Background(), "phone")
	assert.ErrorIs(t, err, ErrHostUnavailable)
}

func TestSearchDropsCardsWithoutLinkOrName(t *testing.T) {
	body := `<html><body>
<div data-id="P1"><img src="https://img.example.com/x.jpg"></div>
<div data-id="P2"><a href="/nameless/p/itm2"><img src="https://img.example.com/y.jpg"></a></div>
<div data-id="P3"><a href="/kept/p/itm3"><div class="nm">Kept Phone</div></a></div>
</body></html>`
	fetcher := &fakeFetcher{body: body}
	service := newTestService(t, fetcher)

	search, err := service.Search(context.Background(), "phone")
	require.NoError(t, err)
	require.Len(t, search.Results, 1)
	assert.Equal(t, "Kept Phone", search.Results[0].Name)
}

func TestSearchLegacyLayout(t *testing.T) {
	body := `<html><body>
<div id="results"><div class="hdr"><span>Showing 1 - 24 of 120 results</span></div><div class="card-row"><a href="/legacy-one/p/itm1"><div class="nm">Legacy One</div></a></div><div class="card-row"><a href="/legacy-two/p/itm2"><div class="nm">Legacy Two</div></a></div></div>
</body></html>`
	fetcher := &fakeFetcher{body: body}
	service := newTestService(t, fetcher)

	search, err := service.Search(context.Background(), "legacy")
	require.NoError(t, err)
	require.Len(t, search.Results, 2)
	assert.Equal(t, "Legacy One", search.Results[0].Name)
	assert.Equal(t, "https://www.flipkart.com/legacy-one/p/itm1", search.Results[0].Link)
	assert.Equal(t, "Legacy Two", search.Results[1].Name)
}

type routedFetcher struct {
	bodies map[string]string
}

func (f *routedFetcher) Fetch(_ context.Context, url string) (string, error) {
	return f.bodies[url], nil
}

func TestSearchResultLinkResolvesToProduct(t *testing.T) {
	fetcher := &routedFetcher{bodies: map[string]string{
		"https://www.flipkart.com/search?q=phone":      searchPage(),
		"https://www.flipkart.com/acme-phone-x/p/itm1": inStockPage(),
	}}
	service := newTestService(t, fetcher)

	search, err := service.Search(context.Background(), "phone")
	require.NoError(t, err)
	require.NotEmpty(t, search.Results)

	product, err := service.Product(context.Background(), search.Results[0].Link)
	require.NoError(t, err)
	require.NotNil(t, product.Name)
	assert.Equal(t, "Acme Phone X (Twilight Blue, 128 GB)", *product.Name)
}

func TestSearchNoCardsYieldsEmptyResults(t *testing.T) {
	fetcher := &fakeFetcher{body: `<html><body><div>No results found for your query</div></body></html>`}
	service := newTestService(t, fetcher)

	search, err := service.Search(context.Background(), "qwerty")
	require.NoError(t, err)
	assert.Empty(t, search.Results)
}
