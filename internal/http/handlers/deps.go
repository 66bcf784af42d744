package handlers

import (
	"comstore/internal/repos"
	"comstore/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler  *ProductHandler
	CategoryHandler *CategoryHandler
	SearchHandler   *SearchHandler
	AuthHandler     *AuthHandler
	BasketHandler   *BasketHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	userRepo := repos.NewUserRepo(db)
	basketRepo := repos.NewBasketRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	authSvc := services.NewAuthService(userRepo)
	basketSvc := services.NewBasketService(basketRepo, prodRepo)

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		AuthHandler:     &AuthHandler{Auth: authSvc},
		BasketHandler:   &BasketHandler{Basket: basketSvc},
	}
}
