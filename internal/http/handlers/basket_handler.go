package handlers

import (
	"errors"

	applog "comstore/internal/log"
	"comstore/internal/services"
	"comstore/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type BasketHandler struct {
	Basket *services.BasketService
}

func (h *BasketHandler) Add(c *fiber.Ctx) error {
	var req struct {
		UserID    int64 `json:"user_id"`
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 || req.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and product_id are required"})
	}

	qty, existed, err := h.Basket.Add(req.UserID, req.ProductID, validate.Qty(req.Quantity))
	if err != nil {
		if errors.Is(err, services.ErrUnknownProduct) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}
		applog.Error(c, "basket.add.error", err, map[string]any{"user_id": req.UserID, "product_id": req.ProductID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update basket"})
	}

	msg := "added to basket"
	if existed {
		msg = "quantity increased"
	}
	return c.JSON(fiber.Map{"message": msg, "quantity": qty})
}
