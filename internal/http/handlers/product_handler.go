package handlers

import (
	"database/sql"
	"errors"

	applog "comstore/internal/log"
	"comstore/internal/services"
	"comstore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, err := h.Catalog.ListProducts(c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		applog.Error(c, "products.list.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(page)
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		applog.Error(c, "products.detail.error", err, map[string]any{"id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load product"})
	}
	return c.JSON(p)
}

func (h *ProductHandler) ByCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category id"})
	}
	page, err := h.Catalog.ListByCategory(id, c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		applog.Error(c, "products.category.error", err, map[string]any{"category_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(fiber.Map{
		"category_id": id,
		"count":       len(page.Data),
		"data":        page.Data,
		"nextOffset":  page.NextOffset,
	})
}

func (h *ProductHandler) Sorted(c *fiber.Ctx) error {
	by := c.Query("by")
	page, err := h.Catalog.SortProducts(by, c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		applog.Error(c, "products.sort.error", err, map[string]any{"by": by})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load products"})
	}
	return c.JSON(fiber.Map{
		"sort":       by,
		"limit":      page.Limit,
		"offset":     page.Offset,
		"nextOffset": page.NextOffset,
		"data":       page.Data,
	})
}
