// Package etl keeps the local catalog store in sync with the upstream
// source. The reconciler computes and applies the minimal set of inserts;
// rows that already exist are skipped, never updated.
package etl

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"comstore/internal/catalog"
)

// Source is the fetch side of a sync run. Satisfied by *catalog.Client.
type Source interface {
	FetchCategories(ctx context.Context) ([]string, error)
	FetchProducts(ctx context.Context) ([]catalog.ProductRecord, error)
}

// Report aggregates what one sync run did.
type Report struct {
	RunID             string
	CategoriesAdded   int
	CategoriesSkipped int
	ProductsAdded     int
	ProductsSkipped   int
	DimensionsAdded   int
	ImagesAdded       int
	Took              time.Duration
}

type Reconciler struct {
	db     *sqlx.DB
	source Source
}

func NewReconciler(db *sqlx.DB, source Source) *Reconciler {
	return &Reconciler{db: db, source: source}
}

// SyncCatalog runs the two reconciliation phases. Categories commit before
// any product work begins, because products resolve their category by name
// against the store. Each phase owns one transaction; a failure in the
// product phase does not roll back committed categories.
func (r *Reconciler) SyncCatalog(ctx context.Context) (Report, error) {
	rep := Report{RunID: uuid.NewString()}
	start := time.Now()

	names, err := r.source.FetchCategories(ctx)
	if err != nil {
		return rep, &PartialSyncError{Phase: "categories", Err: err}
	}
	if err := r.syncCategories(ctx, names, &rep); err != nil {
		return rep, &PartialSyncError{Phase: "categories", Err: err}
	}

	recs, err := r.source.FetchProducts(ctx)
	if err != nil {
		return rep, &PartialSyncError{Phase: "products", Err: err}
	}
	if err := r.syncProducts(ctx, recs, &rep); err != nil {
		return rep, &PartialSyncError{Phase: "products", Err: err}
	}

	rep.Took = time.Since(start)
	return rep, nil
}

func (r *Reconciler) syncCategories(ctx context.Context, names []string, rep *Report) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, name := range names {
		var id int64
		err := tx.GetContext(ctx, &id, `SELECT id FROM categories WHERE name=?`, name)
		switch {
		case err == nil:
			rep.CategoriesSkipped++
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.ExecContext(ctx, `INSERT INTO categories(name) VALUES(?)`, name); err != nil {
				return storageErr(err)
			}
			rep.CategoriesAdded++
		default:
			return storageErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}

func (r *Reconciler) syncProducts(ctx context.Context, recs []catalog.ProductRecord, rep *Report) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range recs {
		// Unknown category names are tolerated: the product lands with a
		// NULL category reference instead of failing the record.
		var categoryID *int64
		var cid int64
		err := tx.GetContext(ctx, &cid, `SELECT id FROM categories WHERE name=?`, rec.Category)
		switch {
		case err == nil:
			categoryID = &cid
		case errors.Is(err, sql.ErrNoRows):
		default:
			return storageErr(err)
		}

		var existing int64
		err = tx.GetContext(ctx, &existing, `SELECT id FROM products WHERE id=?`, rec.ID)
		if err == nil {
			// Products are immutable once ingested: no update, no child
			// re-sync.
			rep.ProductsSkipped++
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return storageErr(err)
		}

		now := time.Now().UTC()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO products
			  (id, title, description, category_id, price, discountPercentage,
			   rating, stock, brand, weight, warrantyInformation,
			   createdAt, updatedAt, thumbnail)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			rec.ID, rec.Title, rec.Description, categoryID, rec.Price, rec.DiscountPercentage,
			rec.Rating, rec.Stock, rec.Brand, rec.Weight, rec.WarrantyInformation,
			now, now, rec.Thumbnail,
		); err != nil {
			return storageErr(err)
		}

		if d := rec.Dimensions; d != nil {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO product_dimensions(product_id, width, height, depth)
				VALUES (?,?,?,?)`,
				rec.ID, d.Width, d.Height, d.Depth,
			); err != nil {
				return storageErr(err)
			}
			rep.DimensionsAdded++
		}

		for _, img := range rec.Images {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO product_images(product_id, image_url)
				VALUES (?,?)`,
				rec.ID, img,
			); err != nil {
				return storageErr(err)
			}
			rep.ImagesAdded++
		}

		rep.ProductsAdded++
	}

	if err := tx.Commit(); err != nil {
		return storageErr(err)
	}
	return nil
}
