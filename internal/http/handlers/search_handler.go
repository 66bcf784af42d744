package handlers

import (
	"strings"

	"comstore/internal/domain"
	applog "comstore/internal/log"
	"comstore/internal/services"
	"comstore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		return c.JSON(fiber.Map{"query": "", "results": []domain.ProductSummary{}})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid search keyword"})
	}

	results, err := h.Catalog.Search(q)
	if err != nil {
		applog.Error(c, "search.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load results"})
	}
	return c.JSON(fiber.Map{"query": q, "results": results})
}
