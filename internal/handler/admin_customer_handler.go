package handler

import (
	"go-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminCustomerHandler struct {
	service service.CustomerService
}

func NewAdminCustomerHandler(s service.CustomerService) *AdminCustomerHandler {
	return &AdminCustomerHandler{service: s}
}

func (h *AdminCustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.service.ListCustomers(c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(customers)
}

func (h *AdminCustomerHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Customer not found"})
	}

	detail, err := h.service.GetCustomer(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(detail)
}
