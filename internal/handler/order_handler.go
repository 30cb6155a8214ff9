package handler

import (
	"go-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// Create runs behind OptionalAuth: a verified identity is attached,
// otherwise the order is stored as a guest order
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req service.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	order, err := h.service.CreateOrder(&req, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(order)
}

func (h *OrderHandler) My(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return c.Status(401).JSON(fiber.Map{"message": "Not authenticated"})
	}

	orders, err := h.service.ListUserOrders(*userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.Params("id"), currentUserID(c), isAdmin(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

// Track is the public lookup by full id or short code
func (h *OrderHandler) Track(c *fiber.Ctx) error {
	view, err := h.service.Track(c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}
