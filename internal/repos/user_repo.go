package repos

import (
	"comstore/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `
	  SELECT id, username, email, password_hash, phone, role
	  FROM users
	  WHERE LOWER(email) = LOWER(?)
	`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Insert(username, email, hash string, phone *string, role string) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO users(username, email, password_hash, phone, role)
	  VALUES(?,?,?,?,?)
	`, username, email, hash, phone, role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
