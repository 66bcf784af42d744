package domain

import "time"

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Product mirrors the products table. The id is the upstream catalog's
// identifier, never generated locally. Optional columns are pointers so
// NULLs round-trip unchanged.
type Product struct {
	ID                  int64     `db:"id" json:"id"`
	Title               string    `db:"title" json:"title"`
	Description         *string   `db:"description" json:"description,omitempty"`
	CategoryID          *int64    `db:"category_id" json:"category_id"`
	Price               float64   `db:"price" json:"price"`
	DiscountPercentage  *float64  `db:"discountPercentage" json:"discountPercentage,omitempty"`
	Rating              *float64  `db:"rating" json:"rating,omitempty"`
	Stock               *int64    `db:"stock" json:"stock,omitempty"`
	Brand               *string   `db:"brand" json:"brand,omitempty"`
	Weight              *float64  `db:"weight" json:"weight,omitempty"`
	WarrantyInformation *string   `db:"warrantyInformation" json:"warrantyInformation,omitempty"`
	Thumbnail           *string   `db:"thumbnail" json:"thumbnail,omitempty"`
	CreatedAt           time.Time `db:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `db:"updatedAt" json:"updatedAt"`
}

type ProductDimensions struct {
	ProductID int64    `db:"product_id" json:"-"`
	Width     *float64 `db:"width" json:"width"`
	Height    *float64 `db:"height" json:"height"`
	Depth     *float64 `db:"depth" json:"depth"`
}

type ProductImage struct {
	ProductID int64  `db:"product_id" json:"-"`
	ImageURL  string `db:"image_url" json:"image_url"`
}

// ProductSummary is the trimmed shape the list endpoints return.
type ProductSummary struct {
	ID           int64    `db:"id" json:"id"`
	Title        string   `db:"title" json:"title"`
	Price        float64  `db:"price" json:"price"`
	Thumbnail    *string  `db:"thumbnail" json:"thumbnail"`
	Rating       *float64 `db:"rating" json:"rating"`
	Brand        *string  `db:"brand" json:"brand,omitempty"`
	CategoryID   *int64   `db:"category_id" json:"category_id,omitempty"`
	CategoryName *string  `db:"category_name" json:"category_name,omitempty"`
}
