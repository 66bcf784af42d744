package services

import (
	"database/sql"
	"errors"

	"comstore/internal/repos"
)

var ErrUnknownProduct = errors.New("unknown product")

type BasketService struct {
	Basket *repos.BasketRepo
	Prods  *repos.ProductRepo
}

func NewBasketService(basket *repos.BasketRepo, prods *repos.ProductRepo) *BasketService {
	return &BasketService{Basket: basket, Prods: prods}
}

// Add puts qty of a product in the user's basket; an existing line has its
// quantity bumped instead of getting a duplicate row.
func (s *BasketService) Add(userID, productID int64, qty int) (int, bool, error) {
	if qty < 1 {
		qty = 1
	}
	if _, err := s.Prods.Get(productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, ErrUnknownProduct
		}
		return 0, false, err
	}
	return s.Basket.Upsert(userID, productID, qty)
}
