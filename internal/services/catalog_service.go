package services

import (
	"comstore/internal/domain"
	"comstore/internal/repos"
)

const maxSearchResults = 200

// sortOrders is the whitelist of sortable columns. Anything else falls
// back to id ascending.
var sortOrders = map[string]string{
	"price_asc":   "p.price ASC",
	"price_desc":  "p.price DESC",
	"rating_asc":  "p.rating ASC",
	"rating_desc": "p.rating DESC",
}

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// Page is the lazy-load envelope the list endpoints return; the client
// requests the next slice with offset = NextOffset.
type Page struct {
	Data       []domain.ProductSummary `json:"data"`
	Limit      int                     `json:"limit"`
	Offset     int                     `json:"offset"`
	NextOffset int                     `json:"nextOffset"`
}

// ProductDetail is a product with its fanned-out children joined back in.
type ProductDetail struct {
	domain.Product
	Dimensions *domain.ProductDimensions `json:"dimensions"`
	Images     []string                  `json:"images"`
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *CatalogService) ListProducts(limit, offset int) (Page, error) {
	limit, offset = clampPage(limit, offset)
	data, err := s.Prods.List(limit, offset)
	if err != nil {
		return Page{}, err
	}
	return Page{Data: data, Limit: limit, Offset: offset, NextOffset: offset + limit}, nil
}

func (s *CatalogService) GetProduct(id int64) (ProductDetail, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return ProductDetail{}, err
	}
	dims, err := s.Prods.Dimensions(id)
	if err != nil {
		return ProductDetail{}, err
	}
	images, err := s.Prods.Images(id)
	if err != nil {
		return ProductDetail{}, err
	}
	return ProductDetail{Product: p, Dimensions: dims, Images: images}, nil
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) ListByCategory(categoryID int64, limit, offset int) (Page, error) {
	limit, offset = clampPage(limit, offset)
	data, err := s.Prods.ListByCategory(categoryID, limit, offset)
	if err != nil {
		return Page{}, err
	}
	return Page{Data: data, Limit: limit, Offset: offset, NextOffset: offset + limit}, nil
}

func (s *CatalogService) Search(q string) ([]domain.ProductSummary, error) {
	return s.Prods.Search(q, maxSearchResults)
}

func (s *CatalogService) SortProducts(by string, limit, offset int) (Page, error) {
	limit, offset = clampPage(limit, offset)
	orderBy, ok := sortOrders[by]
	if !ok {
		orderBy = "p.id ASC"
	}
	data, err := s.Prods.ListSorted(orderBy, limit, offset)
	if err != nil {
		return Page{}, err
	}
	return Page{Data: data, Limit: limit, Offset: offset, NextOffset: offset + limit}, nil
}
