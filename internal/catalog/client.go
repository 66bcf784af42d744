// Package catalog fetches the upstream product catalog over HTTP and
// normalizes its loosely-shaped JSON into flat records.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseSize caps how much of an upstream response we will read (10MB).
const maxResponseSize = 10 * 1024 * 1024

// ErrSourceUnavailable covers any network or decode failure talking to the
// upstream catalog. Callers are expected to give up on the current run and
// try again on the next schedule, not to retry inline.
var ErrSourceUnavailable = errors.New("catalog source unavailable")

type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Dimensions is the optional nested size object on a product record.
type Dimensions struct {
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Depth  *float64 `json:"depth"`
}

// ProductRecord is one upstream product. ID is the upstream identifier and
// is the uniqueness key downstream. Optional fields stay nil when the
// source omits them.
type ProductRecord struct {
	ID                  int64
	Title               string
	Description         *string
	Category            string
	Price               float64
	DiscountPercentage  *float64
	Rating              *float64
	Stock               *int64
	Brand               *string
	Weight              *float64
	WarrantyInformation *string
	Thumbnail           *string
	Dimensions          *Dimensions
	Images              []string
}

// FetchCategories returns the upstream category list as plain names.
// The source is not contractually stable: entries arrive either as bare
// strings or as objects carrying a name field. Both shapes are resolved
// here so nothing downstream has to care.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, "/products/categories", &raw); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			if s != "" {
				names = append(names, s)
			}
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(r, &obj); err == nil && obj.Name != "" {
			names = append(names, obj.Name)
		}
	}
	return names, nil
}

type productWire struct {
	ID                  int64           `json:"id"`
	Title               string          `json:"title"`
	Description         *string         `json:"description"`
	Category            string          `json:"category"`
	Price               float64         `json:"price"`
	DiscountPercentage  *float64        `json:"discountPercentage"`
	Rating              *float64        `json:"rating"`
	Stock               *int64          `json:"stock"`
	Brand               *string         `json:"brand"`
	Weight              *float64        `json:"weight"`
	WarrantyInformation *string         `json:"warrantyInformation"`
	Thumbnail           *string         `json:"thumbnail"`
	Dimensions          json.RawMessage `json:"dimensions"`
	Images              []string        `json:"images"`
}

// FetchProducts returns the full upstream product list (the source serves
// it fully materialized under a "products" key when limit=0).
func (c *Client) FetchProducts(ctx context.Context) ([]ProductRecord, error) {
	var payload struct {
		Products []productWire `json:"products"`
	}
	if err := c.getJSON(ctx, "/products?limit=0", &payload); err != nil {
		return nil, err
	}

	out := make([]ProductRecord, 0, len(payload.Products))
	for _, w := range payload.Products {
		rec := ProductRecord{
			ID:                  w.ID,
			Title:               w.Title,
			Description:         w.Description,
			Category:            w.Category,
			Price:               w.Price,
			DiscountPercentage:  w.DiscountPercentage,
			Rating:              w.Rating,
			Stock:               w.Stock,
			Brand:               w.Brand,
			Weight:              w.Weight,
			WarrantyInformation: w.WarrantyInformation,
			Thumbnail:           w.Thumbnail,
			Images:              w.Images,
		}
		// A malformed dimensions object is treated as absent rather than
		// failing the record.
		if len(w.Dimensions) > 0 && string(w.Dimensions) != "null" {
			var d Dimensions
			if err := json.Unmarshal(w.Dimensions, &d); err == nil {
				rec.Dimensions = &d
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: status %d", ErrSourceUnavailable, path, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrSourceUnavailable, path, err)
	}
	return nil
}
