// Package fetch retrieves raw orders from the merchant API. Retrieval is a
// collaborator of the pipeline: it hands over fully materialized orders and
// owns all retry and pagination concerns.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/pitcast/pitcast/internal/models"
)

// Cache stores fetched pages so a re-run skips the slow API crawl.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}

type Client struct {
	baseURL    string
	merchantID string
	token      string
	pageSize   int
	maxRetries int
	httpClient *http.Client
	cache      Cache
	backoff    time.Duration
}

// ordersPage mirrors the API's element-wrapper response.
type ordersPage struct {
	Elements []models.RawOrder `json:"elements"`
}

func NewClient(cfg *models.Config, cache Cache) *Client {
	return &Client{
		baseURL:    cfg.APIBaseURL,
		merchantID: cfg.MerchantID,
		token:      cfg.APIToken,
		pageSize:   cfg.PageSize,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		cache:      cache,
		backoff:    time.Second,
	}
}

// FetchOrders pages through the merchant's orders, expanded with line items
// and modifications, until a short page signals the end.
func (c *Client) FetchOrders(ctx context.Context) ([]models.RawOrder, error) {
	var orders []models.RawOrder

	bar := progressbar.Default(-1, "fetching order pages")
	defer bar.Close()

	for offset := 0; ; offset += c.pageSize {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, fmt.Errorf("fetching orders at offset %d: %w", offset, err)
		}
		orders = append(orders, page.Elements...)
		bar.Add(1)

		if len(page.Elements) < c.pageSize {
			break
		}
	}

	log.Printf("fetched %d orders", len(orders))
	return orders, nil
}

func (c *Client) fetchPage(ctx context.Context, offset int) (*ordersPage, error) {
	u := fmt.Sprintf("%s/v3/merchants/%s/orders?%s", c.baseURL, url.PathEscape(c.merchantID),
		url.Values{
			"expand": {"lineItems.modifications"},
			"limit":  {fmt.Sprint(c.pageSize)},
			"offset": {fmt.Sprint(offset)},
		}.Encode())

	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, u); ok {
			return decodePage(body)
		}
	}

	body, err := c.getWithRetry(ctx, u)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, u, body); err != nil {
			log.Printf("order page cache write failed: %v", err)
		}
	}

	return decodePage(body)
}

// getWithRetry retries transport errors, 429 and 5xx responses with
// exponential backoff. Other statuses fail immediately.
func (c *Client) getWithRetry(ctx context.Context, u string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := c.backoff * (1 << (attempt - 1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("status %d from %s", resp.StatusCode, u)
		default:
			return nil, fmt.Errorf("status %d from %s", resp.StatusCode, u)
		}
	}

	return nil, fmt.Errorf("exhausted %d retries: %w", c.maxRetries, lastErr)
}

func decodePage(body []byte) (*ordersPage, error) {
	var page ordersPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding orders page: %w", err)
	}
	return &page, nil
}
