package handler

import (
	"go-storefront/internal/model"
	"go-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminOrderHandler struct {
	service service.OrderService
}

func NewAdminOrderHandler(s service.OrderService) *AdminOrderHandler {
	return &AdminOrderHandler{service: s}
}

func (h *AdminOrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(orders)
}

func (h *AdminOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var body struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	order, err := h.service.UpdateStatus(c.Params("id"), body.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}
