package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CatalogListing is the subset of a catalog listing the order service
// prices against.
type CatalogListing struct {
	ID    int    `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
	Price int    `json:"price"`
}

var (
	ErrCatalogNotFound    = errors.New("catalog listing not found")
	ErrCatalogBadStatus   = errors.New("catalog bad status")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

type CatalogClient struct {
	BaseURL string
	Client  *http.Client
}

func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

// GetListing resolves a listing by its code. Transport failures and
// timeouts all surface as ErrCatalogUnavailable.
func (c *CatalogClient) GetListing(ctx context.Context, code string) (CatalogListing, error) {
	u := fmt.Sprintf("%s/listings/%s", c.BaseURL, url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return CatalogListing{}, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return CatalogListing{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return CatalogListing{}, ErrCatalogNotFound
	case http.StatusServiceUnavailable:
		return CatalogListing{}, ErrCatalogUnavailable
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return CatalogListing{}, fmt.Errorf("%w: status=%d", ErrCatalogBadStatus, resp.StatusCode)
	}

	var l CatalogListing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return CatalogListing{}, fmt.Errorf("%w: decode: %v", ErrCatalogBadStatus, err)
	}
	return l, nil
}
