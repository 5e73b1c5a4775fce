package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/profitpulse/shop-sync-service/internal/config"
	"github.com/profitpulse/shop-sync-service/internal/domain"
)

// Client talks to the Shopify Admin REST API. It hides auth headers
// and page_info pagination and maps HTTP outcomes to the typed
// failures of the domain: 429 -> RateLimited, 5xx/network ->
// Transient, 401/403 -> Fatal.
type Client struct {
	shopDomain  string
	accessToken string
	apiVersion  string
	pageSize    int
	httpClient  *http.Client
}

func NewClient(cfg config.ShopifyAPI) *Client {
	return &Client{
		shopDomain:  cfg.ShopDomain,
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
		pageSize:    cfg.PageSize,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) baseURL() string {
	return fmt.Sprintf("https://%s/admin/api/%s", c.shopDomain, c.apiVersion)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) (http.Header, error) {
	reqURL := c.baseURL() + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransientError{Reason: "http request failed", Err: err}
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &domain.TransientError{Reason: "reading response body", Err: err}
	}

	switch {
	case response.StatusCode >= 200 && response.StatusCode < 300:
		if err := json.Unmarshal(responseBodyBytes, out); err != nil {
			return nil, &domain.TransientError{Reason: "decoding response", Err: err}
		}
		return response.Header, nil
	case response.StatusCode == http.StatusTooManyRequests:
		return nil, &domain.RateLimitedError{RetryAfter: retryAfter(response.Header)}
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return nil, &domain.FatalError{Reason: fmt.Sprintf("auth failed with status %d", response.StatusCode)}
	case response.StatusCode == http.StatusNotFound:
		return nil, &domain.FatalError{Reason: fmt.Sprintf("%s not found", path)}
	default:
		return nil, &domain.TransientError{
			Reason: fmt.Sprintf("unexpected status %d: %s", response.StatusCode, truncate(responseBodyBytes, 200)),
		}
	}
}

func retryAfter(header http.Header) time.Duration {
	raw := header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

var nextLinkRe = regexp.MustCompile(`<[^>]*[?&]page_info=([^&>]+)[^>]*>;\s*rel="next"`)

// nextPageInfo extracts the page_info cursor from the Link header;
// empty means the listing is exhausted.
func nextPageInfo(header http.Header) string {
	for _, link := range header.Values("Link") {
		if m := nextLinkRe.FindStringSubmatch(link); m != nil {
			return m[1]
		}
	}
	return ""
}

// parseMoney converts the API's string-typed money fields. Empty
// strings read as zero.
func parseMoney(raw string) float64 {
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

func truncate(body []byte, max int) string {
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
