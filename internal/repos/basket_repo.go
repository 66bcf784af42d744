package repos

import (
	"database/sql"
	"errors"

	"comstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BasketRepo struct{ db *sqlx.DB }

func NewBasketRepo(db *sqlx.DB) *BasketRepo { return &BasketRepo{db: db} }

// Upsert adds qty to an existing (user, product) line or inserts a new one.
// Returns the resulting quantity and whether the line already existed.
func (r *BasketRepo) Upsert(userID, productID int64, qty int) (int, bool, error) {
	var it domain.BasketItem
	err := r.db.Get(&it, `
	  SELECT id, user_id, product_id, quantity
	  FROM basket_items
	  WHERE user_id = ? AND product_id = ?
	`, userID, productID)
	if err == nil {
		newQty := it.Quantity + qty
		if _, err := r.db.Exec(`UPDATE basket_items SET quantity = ? WHERE id = ?`, newQty, it.ID); err != nil {
			return 0, false, err
		}
		return newQty, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, err
	}

	if _, err := r.db.Exec(`
	  INSERT INTO basket_items(user_id, product_id, quantity)
	  VALUES(?,?,?)
	`, userID, productID, qty); err != nil {
		return 0, false, err
	}
	return qty, false, nil
}
