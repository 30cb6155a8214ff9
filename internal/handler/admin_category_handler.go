package handler

import (
	"go-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminCategoryHandler struct {
	service service.CatalogService
}

func NewAdminCategoryHandler(s service.CatalogService) *AdminCategoryHandler {
	return &AdminCategoryHandler{service: s}
}

func (h *AdminCategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

func (h *AdminCategoryHandler) Create(c *fiber.Ctx) error {
	var input service.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	category, err := h.service.CreateCategory(&input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(category)
}

func (h *AdminCategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Category not found"})
	}

	var input service.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	category, err := h.service.UpdateCategory(id, &input)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(category)
}

func (h *AdminCategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Category not found"})
	}

	if err := h.service.DeleteCategory(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
