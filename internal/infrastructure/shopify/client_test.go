package shopify

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextPageInfo(t *testing.T) {
	header := http.Header{}
	header.Add("Link", `<https://shop.myshopify.com/admin/api/2024-04/orders.json?limit=250&page_info=abc123>; rel="next"`)

	assert.Equal(t, "abc123", nextPageInfo(header))
}

func TestNextPageInfo_PreviousOnly(t *testing.T) {
	header := http.Header{}
	header.Add("Link", `<https://shop.myshopify.com/admin/api/2024-04/orders.json?page_info=zzz>; rel="previous"`)

	assert.Empty(t, nextPageInfo(header))
}

func TestNextPageInfo_BothRelations(t *testing.T) {
	header := http.Header{}
	header.Add("Link", `<https://x/orders.json?page_info=prev1>; rel="previous", <https://x/orders.json?page_info=next1>; rel="next"`)

	assert.Equal(t, "next1", nextPageInfo(header))
}

func TestNextPageInfo_NoHeader(t *testing.T) {
	assert.Empty(t, nextPageInfo(http.Header{}))
}

func TestParseMoney(t *testing.T) {
	assert.Equal(t, 12.5, parseMoney("12.50"))
	assert.Zero(t, parseMoney(""))
	assert.Zero(t, parseMoney("not-a-number"))
}

func TestRetryAfter(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "2.0")
	assert.Equal(t, 2*time.Second, retryAfter(header))

	assert.Zero(t, retryAfter(http.Header{}))
}
