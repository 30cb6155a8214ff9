package handler

import (
	"strconv"

	"go-storefront/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

// List is the public storefront listing: active, in-stock products
// with filter/sort/pagination query params
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q := service.ProductListQuery{
		Query:        c.Query("q"),
		CategorySlug: c.Query("category_slug"),
		Sort:         c.Query("sort"),
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 12),
	}

	if raw := c.Query("min_price"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			q.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			q.MaxPrice = &v
		}
	}
	if raw := c.Query("min_rating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			q.MinRating = &v
		}
	}

	page, err := h.service.ListProducts(q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}
