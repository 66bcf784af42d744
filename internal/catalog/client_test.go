package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"comstore/internal/catalog"
)

func newServer(t *testing.T, categories, products string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(categories))
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(products))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchCategories_NormalizesBothShapes(t *testing.T) {
	srv := newServer(t, `["electronics", {"name": "beauty", "slug": "beauty"}]`, `{}`)
	c := catalog.NewClient(srv.URL)

	names, err := c.FetchCategories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "electronics" || names[1] != "beauty" {
		t.Fatalf("want [electronics beauty], got %v", names)
	}
}

func TestFetchProducts_DecodesOptionalFields(t *testing.T) {
	srv := newServer(t, `[]`, `{"products": [
		{"id": 1, "title": "Phone", "price": 500, "category": "electronics",
		 "dimensions": {"width": 5}, "images": ["a.jpg", "b.jpg"]},
		{"id": 2, "title": "Soap", "price": 3, "category": "beauty"}
	]}`)
	c := catalog.NewClient(srv.URL)

	recs, err := c.FetchProducts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("want 2 records, got %d", len(recs))
	}

	p := recs[0]
	if p.ID != 1 || p.Title != "Phone" || p.Category != "electronics" {
		t.Fatalf("bad record: %+v", p)
	}
	if p.Dimensions == nil || p.Dimensions.Width == nil || *p.Dimensions.Width != 5 {
		t.Fatalf("dimensions not decoded: %+v", p.Dimensions)
	}
	if p.Dimensions.Height != nil || p.Dimensions.Depth != nil {
		t.Fatalf("missing axes must stay nil: %+v", p.Dimensions)
	}
	if len(p.Images) != 2 || p.Images[0] != "a.jpg" {
		t.Fatalf("images: %v", p.Images)
	}

	s := recs[1]
	if s.Dimensions != nil || len(s.Images) != 0 || s.Description != nil || s.Brand != nil {
		t.Fatalf("omitted fields must stay empty: %+v", s)
	}
}

func TestFetchProducts_MalformedDimensionsTreatedAsAbsent(t *testing.T) {
	srv := newServer(t, `[]`, `{"products": [
		{"id": 3, "title": "Lamp", "price": 20, "category": "home", "dimensions": "oops"}
	]}`)
	c := catalog.NewClient(srv.URL)

	recs, err := c.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("malformed sub-object must not fail the fetch: %v", err)
	}
	if recs[0].Dimensions != nil {
		t.Fatalf("want nil dimensions, got %+v", recs[0].Dimensions)
	}
}

func TestFetch_SourceUnavailable(t *testing.T) {
	// upstream error status
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	c := catalog.NewClient(srv.URL)

	if _, err := c.FetchCategories(context.Background()); !errors.Is(err, catalog.ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}

	// undecodable body
	srv2 := newServer(t, `{not json`, `{not json`)
	c2 := catalog.NewClient(srv2.URL)
	if _, err := c2.FetchProducts(context.Background()); !errors.Is(err, catalog.ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}

	// nothing listening
	srv3 := httptest.NewServer(http.NotFoundHandler())
	url := srv3.URL
	srv3.Close()
	c3 := catalog.NewClient(url)
	if _, err := c3.FetchCategories(context.Background()); !errors.Is(err, catalog.ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}
}
