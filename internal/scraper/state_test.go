package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStateShareURLFallback(t *testing.T) {
	body := `<html><body><h1>No scripts here</h1></body></html>`

	p := extractFixture(t, body, requestURL)
	assert.Equal(t, requestURL, p.ShareURL)
	assert.Nil(t, p.ProductID)
}

func TestEmbeddedStateIgnoresForeignScripts(t *testing.T) {
	body := `<html><body>
<script>var analytics = {"productId":"WRONG","product.share.pp":"https://evil.example.com/x"};</script>
<script>window.__INITIAL_STATE__ = {"productId":"ITMRIGHT0001","product.share.pp":"https://dl.flipkart.com/dl/right/p/itmright0001"};</script>
</body></html>`

	p := extractFixture(t, body, requestURL)
	require.NotNil(t, p.ProductID)
	assert.Equal(t, "ITMRIGHT0001", *p.ProductID)
	assert.Equal(t, "https://dl.flipkart.com/dl/right/p/itmright0001", p.ShareURL)
}

func TestEmbeddedStateRelativeShareLinkRejected(t *testing.T) {
	body := `<html><body>
<script>window.__INITIAL_STATE__ = {"productId":"ITMREL000001","product.share.pp":"dl/relative-only"};</script>
</body></html>`

	p := extractFixture(t, body, requestURL)
	require.NotNil(t, p.ProductID)
	assert.Equal(t, "ITMREL000001", *p.ProductID)
	assert.Equal(t, requestURL, p.ShareURL)
}

func TestEmbeddedStateFirstValidLinkWins(t *testing.T) {
	body := `<html><body>
<script>window.__INITIAL_STATE__ = {"product.share.pp":"not a link"};</script>
<script>window.__INITIAL_STATE__ = {"product.share.pp":"https://dl.flipkart.com/dl/second/p/itm2"};</script>
<script>window.__INITIAL_STATE__ = {"product.share.pp":"https://dl.flipkart.com/dl/third/p/itm3"};</script>
</body></html>`

	p := extractFixture(t, body, requestURL)
	assert.Equal(t, "https://dl.flipkart.com/dl/second/p/itm2", p.ShareURL)
}

func TestEmbeddedStateProductIDRequiresClosingQuote(t *testing.T) {
	body := `<html><body>
<script>window.__INITIAL_STATE__ = {"productId":ITMNOQUOTE</script>
</body></html>`

	p := extractFixture(t, body, requestURL)
	assert.Nil(t, p.ProductID)
}
