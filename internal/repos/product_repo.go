package repos

import (
	"database/sql"
	"errors"

	"comstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List(limit, offset int) ([]domain.ProductSummary, error) {
	out := []domain.ProductSummary{}
	err := r.db.Select(&out, `
	  SELECT id, title, price, thumbnail, rating
	  FROM products
	  ORDER BY id
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, title, description, category_id, price, discountPercentage,
	         rating, stock, brand, weight, warrantyInformation,
	         createdAt, updatedAt, thumbnail
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

// Dimensions returns the product's dimensions row, or nil when the source
// record never carried one.
func (r *ProductRepo) Dimensions(productID int64) (*domain.ProductDimensions, error) {
	var d domain.ProductDimensions
	err := r.db.Get(&d, `
	  SELECT product_id, width, height, depth
	  FROM product_dimensions
	  WHERE product_id = ?
	`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ProductRepo) Images(productID int64) ([]string, error) {
	out := []string{}
	err := r.db.Select(&out, `
	  SELECT image_url FROM product_images
	  WHERE product_id = ?
	  ORDER BY id
	`, productID)
	return out, err
}

func (r *ProductRepo) ListByCategory(categoryID int64, limit, offset int) ([]domain.ProductSummary, error) {
	out := []domain.ProductSummary{}
	err := r.db.Select(&out, `
	  SELECT p.id, p.title, p.price, p.thumbnail, p.rating,
	         p.category_id, c.name AS category_name
	  FROM products p
	  LEFT JOIN categories c ON p.category_id = c.id
	  WHERE p.category_id = ?
	  ORDER BY p.id ASC
	  LIMIT ? OFFSET ?
	`, categoryID, limit, offset)
	return out, err
}

// Search matches the keyword as a substring of title, description, brand
// or category name. Newest products first, capped result set.
func (r *ProductRepo) Search(q string, limit int) ([]domain.ProductSummary, error) {
	kw := "%" + q + "%"
	out := []domain.ProductSummary{}
	err := r.db.Select(&out, `
	  SELECT p.id, p.title, p.price, p.thumbnail, p.rating,
	         p.brand, p.category_id, c.name AS category_name
	  FROM products p
	  LEFT JOIN categories c ON p.category_id = c.id
	  WHERE p.title LIKE ?
	     OR p.description LIKE ?
	     OR p.brand LIKE ?
	     OR c.name LIKE ?
	  ORDER BY p.id DESC
	  LIMIT ?
	`, kw, kw, kw, kw, limit)
	return out, err
}

// ListSorted orders by the given SQL fragment. orderBy MUST come from the
// service-level whitelist, never from user input.
func (r *ProductRepo) ListSorted(orderBy string, limit, offset int) ([]domain.ProductSummary, error) {
	out := []domain.ProductSummary{}
	err := r.db.Select(&out, `
	  SELECT p.id, p.title, p.price, p.thumbnail, p.rating,
	         p.category_id, c.name AS category_name
	  FROM products p
	  LEFT JOIN categories c ON p.category_id = c.id
	  ORDER BY `+orderBy+`
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}
