// Package http provides HTTP implementations of docsets.CatalogSource and
// docsets.Downloader.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docsets"
)

// DefaultCatalogURL is the Zeal docset list endpoint.
const DefaultCatalogURL = "https://api.zealdocs.org/v1/docsets"

// DefaultFeedURL is the base of the Zeal docset archive redirector.
const DefaultFeedURL = "https://go.zealdocs.org/d"

// DefaultCatalogTimeout is the default timeout for catalog requests.
const DefaultCatalogTimeout = 30 * time.Second

// Ensure CatalogClient implements docsets.CatalogSource at compile time.
var _ docsets.CatalogSource = (*CatalogClient)(nil)

// CatalogClient fetches the docset catalog over HTTP.
type CatalogClient struct {
	client *http.Client
	url    string
}

// Option configures a CatalogClient.
type Option func(*CatalogClient)

// WithCatalogURL sets the catalog endpoint.
// Defaults to DefaultCatalogURL if not specified.
func WithCatalogURL(url string) Option {
	return func(c *CatalogClient) {
		c.url = url
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *CatalogClient) {
		c.client = client
	}
}

// NewCatalogClient creates a new CatalogClient.
func NewCatalogClient(opts ...Option) *CatalogClient {
	c := &CatalogClient{
		url: DefaultCatalogURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Timeout: DefaultCatalogTimeout,
		}
	}

	return c
}

// FetchCatalog retrieves the raw catalog payload.
func (c *CatalogClient) FetchCatalog(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, c.url)
	}

	return io.ReadAll(resp.Body)
}
