package etl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"comstore/internal/catalog"
	"comstore/internal/etl"
	"comstore/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// one connection so every query sees the same in-memory database
	db.SetMaxOpenConns(1)
	if err := repos.EnsureSchema(db); err != nil {
		t.Fatal(err)
	}
	return db
}

type fakeSource struct {
	categories []string
	products   []catalog.ProductRecord
	catErr     error
	prodErr    error
}

func (f *fakeSource) FetchCategories(ctx context.Context) ([]string, error) {
	return f.categories, f.catErr
}

func (f *fakeSource) FetchProducts(ctx context.Context) ([]catalog.ProductRecord, error) {
	return f.products, f.prodErr
}

func fptr(v float64) *float64 { return &v }

func phoneRecord() catalog.ProductRecord {
	return catalog.ProductRecord{
		ID:         1,
		Title:      "Phone",
		Price:      500,
		Category:   "electronics",
		Dimensions: &catalog.Dimensions{Width: fptr(5)},
		Images:     []string{"a.jpg", "b.jpg"},
	}
}

func count(t *testing.T, db *sqlx.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.Get(&n, query, args...); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestSyncCatalog_FirstRun(t *testing.T) {
	db := memdb(t)
	src := &fakeSource{
		categories: []string{"electronics", "beauty"},
		products:   []catalog.ProductRecord{phoneRecord()},
	}
	rec := etl.NewReconciler(db, src)

	rep, err := rec.SyncCatalog(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rep.CategoriesAdded != 2 || rep.CategoriesSkipped != 0 {
		t.Fatalf("categories: want 2 added / 0 skipped, got %+v", rep)
	}
	if rep.ProductsAdded != 1 || rep.DimensionsAdded != 1 || rep.ImagesAdded != 2 {
		t.Fatalf("products fan-out wrong: %+v", rep)
	}

	// category reference resolved by name
	var catID *int64
	if err := db.Get(&catID, `SELECT category_id FROM products WHERE id=1`); err != nil {
		t.Fatal(err)
	}
	if catID == nil {
		t.Fatal("category_id is NULL, want resolved id")
	}
	if got := count(t, db, `SELECT COUNT(*) FROM categories WHERE id=? AND name='electronics'`, *catID); got != 1 {
		t.Fatalf("category_id %d does not point at electronics", *catID)
	}

	// exactly one dimensions row, missing axes stay NULL
	var dims struct {
		Width  *float64 `db:"width"`
		Height *float64 `db:"height"`
		Depth  *float64 `db:"depth"`
	}
	if err := db.Get(&dims, `SELECT width, height, depth FROM product_dimensions WHERE product_id=1`); err != nil {
		t.Fatal(err)
	}
	if dims.Width == nil || *dims.Width != 5 {
		t.Fatalf("width: want 5, got %v", dims.Width)
	}
	if dims.Height != nil || dims.Depth != nil {
		t.Fatalf("height/depth should stay NULL, got %v %v", dims.Height, dims.Depth)
	}

	// N images for an N-element source list, source order preserved
	var urls []string
	if err := db.Select(&urls, `SELECT image_url FROM product_images WHERE product_id=1 ORDER BY id`); err != nil {
		t.Fatal(err)
	}
	if len(urls) != 2 || urls[0] != "a.jpg" || urls[1] != "b.jpg" {
		t.Fatalf("images: want [a.jpg b.jpg], got %v", urls)
	}
}

func TestSyncCatalog_Idempotent(t *testing.T) {
	db := memdb(t)
	src := &fakeSource{
		categories: []string{"electronics", "beauty"},
		products:   []catalog.ProductRecord{phoneRecord()},
	}
	rec := etl.NewReconciler(db, src)

	if _, err := rec.SyncCatalog(context.Background()); err != nil {
		t.Fatal(err)
	}
	rep, err := rec.SyncCatalog(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if rep.CategoriesAdded != 0 || rep.CategoriesSkipped != 2 {
		t.Fatalf("second run categories: want all skipped, got %+v", rep)
	}
	if rep.ProductsAdded != 0 || rep.ProductsSkipped != 1 {
		t.Fatalf("second run products: want all skipped, got %+v", rep)
	}
	if rep.DimensionsAdded != 0 || rep.ImagesAdded != 0 {
		t.Fatalf("second run must not re-sync children: %+v", rep)
	}

	if got := count(t, db, `SELECT COUNT(*) FROM products`); got != 1 {
		t.Fatalf("products: want 1 row, got %d", got)
	}
	if got := count(t, db, `SELECT COUNT(*) FROM product_dimensions`); got != 1 {
		t.Fatalf("dimensions: want 1 row, got %d", got)
	}
	if got := count(t, db, `SELECT COUNT(*) FROM product_images`); got != 2 {
		t.Fatalf("images: want 2 rows, got %d", got)
	}
}

func TestSyncCatalog_UnknownCategory(t *testing.T) {
	db := memdb(t)
	p := phoneRecord()
	p.Category = "toys" // never synced as a category
	src := &fakeSource{products: []catalog.ProductRecord{p}}
	rec := etl.NewReconciler(db, src)

	rep, err := rec.SyncCatalog(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rep.ProductsAdded != 1 {
		t.Fatalf("product should insert despite unknown category: %+v", rep)
	}
	var catID *int64
	if err := db.Get(&catID, `SELECT category_id FROM products WHERE id=1`); err != nil {
		t.Fatal(err)
	}
	if catID != nil {
		t.Fatalf("category_id: want NULL, got %d", *catID)
	}
}

func TestSyncCatalog_SourceDown(t *testing.T) {
	db := memdb(t)
	src := &fakeSource{catErr: catalog.ErrSourceUnavailable}
	rec := etl.NewReconciler(db, src)

	_, err := rec.SyncCatalog(context.Background())
	if err == nil {
		t.Fatal("want error when the source is down")
	}
	var pse *etl.PartialSyncError
	if !errors.As(err, &pse) {
		t.Fatalf("want PartialSyncError, got %T: %v", err, err)
	}
	if pse.Phase != "categories" {
		t.Fatalf("phase: want categories, got %s", pse.Phase)
	}
	if !errors.Is(err, catalog.ErrSourceUnavailable) {
		t.Fatalf("cause not preserved: %v", err)
	}
}

func TestSyncCatalog_ProductPhaseFailureKeepsCategories(t *testing.T) {
	db := memdb(t)
	src := &fakeSource{
		categories: []string{"electronics", "beauty"},
		products:   []catalog.ProductRecord{phoneRecord()},
	}
	rec := etl.NewReconciler(db, src)

	// break the product phase only
	if _, err := db.Exec(`DROP TABLE products`); err != nil {
		t.Fatal(err)
	}

	_, err := rec.SyncCatalog(context.Background())
	if err == nil {
		t.Fatal("want error with products table gone")
	}
	var pse *etl.PartialSyncError
	if !errors.As(err, &pse) || pse.Phase != "products" {
		t.Fatalf("want products-phase PartialSyncError, got %v", err)
	}
	if !errors.Is(err, etl.ErrStorageUnavailable) {
		t.Fatalf("want ErrStorageUnavailable cause, got %v", err)
	}

	// phase 1 committed before the failure and stays persisted
	if got := count(t, db, `SELECT COUNT(*) FROM categories`); got != 2 {
		t.Fatalf("categories after failed run: want 2, got %d", got)
	}
}
