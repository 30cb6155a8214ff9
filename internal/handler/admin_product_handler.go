package handler

import (
	"go-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminProductHandler struct {
	service service.CatalogService
}

func NewAdminProductHandler(s service.CatalogService) *AdminProductHandler {
	return &AdminProductHandler{service: s}
}

func (h *AdminProductHandler) List(c *fiber.Ctx) error {
	q := service.AdminProductQuery{
		Query: c.Query("q"),
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 50),
	}
	if raw := c.Query("category_id"); raw != "" {
		if id, err := parseUUID(raw); err == nil {
			q.CategoryID = &id
		}
	}

	page, err := h.service.ListAdminProducts(q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func (h *AdminProductHandler) Create(c *fiber.Ctx) error {
	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(product)
}

func (h *AdminProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}

	var input service.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(id, &input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *AdminProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *AdminProductHandler) BulkStatus(c *fiber.Ctx) error {
	var body struct {
		IDs      []uuid.UUID `json:"ids"`
		IsActive bool        `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	updated, err := h.service.SetProductsActive(body.IDs, body.IsActive)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message":   "Products updated",
		"updated":   updated,
		"is_active": body.IsActive,
	})
}
