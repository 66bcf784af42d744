package services

import (
	"database/sql"
	"errors"

	"comstore/internal/domain"
	"comstore/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already in use")
)

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService {
	return &AuthService{Users: users}
}

// Login verifies credentials and hands back an opaque session token.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	return u, uuid.NewString(), nil
}

func (s *AuthService) Register(username, email, password string, phone *string) (*domain.User, error) {
	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	id, err := s.Users.Insert(username, email, string(hash), phone, "user")
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Username: username, Email: email, Phone: phone, Role: "user"}, nil
}
