package domain

type User struct {
	ID       int64   `db:"id" json:"id"`
	Username string  `db:"username" json:"username"`
	Email    string  `db:"email" json:"email"`
	Hash     string  `db:"password_hash" json:"-"`
	Phone    *string `db:"phone" json:"phone,omitempty"`
	Role     string  `db:"role" json:"role"`
}

type BasketItem struct {
	ID        int64 `db:"id" json:"id"`
	UserID    int64 `db:"user_id" json:"user_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
}
