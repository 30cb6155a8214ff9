package service

import (
	"errors"
	"fmt"

	"go-storefront/internal/model"
	"go-storefront/internal/repository"
	"go-storefront/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugTaken        = errors.New("slug already exists")
	ErrInvalidCategory  = errors.New("invalid category id")
	ErrNoProductIDs     = errors.New("no product ids provided")
	ErrValidation       = errors.New("validation failed")
)

// ProductListQuery is the public storefront listing request
type ProductListQuery struct {
	Query        string
	CategorySlug string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinRating    *float64
	Sort         string
	Page         int
	Limit        int
}

// ProductPage is the paginated listing response shape
type ProductPage struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Pages int64           `json:"pages"`
}

// AdminProductQuery is the back-office listing request (no
// active/stock filtering, newest first)
type AdminProductQuery struct {
	Query      string
	CategoryID *uuid.UUID
	Page       int
	Limit      int
}

// ProductInput is the admin create/update payload. Pointer fields
// distinguish "absent" from zero on partial updates.
type ProductInput struct {
	Name        string             `json:"name" validate:"required"`
	Slug        string             `json:"slug" validate:"required,slug"`
	CategoryID  uuid.UUID          `json:"category_id" validate:"uuid_required"`
	Price       *decimal.Decimal   `json:"price" validate:"required"`
	Stock       *int               `json:"stock" validate:"required"`
	Description *string            `json:"description"`
	Images      model.ImageList    `json:"images"`
	Options     model.OptionGroups `json:"options"`
	IsActive    *bool              `json:"is_active"`
}

type CategoryInput struct {
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"required,slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type CatalogService interface {
	ListProducts(q ProductListQuery) (*ProductPage, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListCategories() ([]model.Category, error)

	ListAdminProducts(q AdminProductQuery) (*ProductPage, error)
	CreateProduct(input *ProductInput) (*model.Product, error)
	UpdateProduct(id uuid.UUID, input *ProductInput) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	SetProductsActive(ids []uuid.UUID, isActive bool) (int64, error)

	CreateCategory(input *CategoryInput) (*model.Category, error)
	UpdateCategory(id uuid.UUID, input *CategoryInput) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *catalogService) ListProducts(q ProductListQuery) (*ProductPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 12
	}

	filter := repository.ProductFilter{
		Query:      q.Query,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		MinRating:  q.MinRating,
		Sort:       q.Sort,
		OnlyOnSale: true,
		Page:       page,
		Limit:      limit,
	}

	if q.CategorySlug != "" && q.CategorySlug != "all" {
		category, err := s.categoryRepo.FindBySlug(q.CategorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Unknown category slug yields an empty page, not a 404
				return &ProductPage{Items: []model.Product{}, Total: 0, Page: page, Pages: 0}, nil
			}
			return nil, err
		}
		filter.CategoryID = &category.ID
	}

	items, total, err := s.productRepo.Find(filter)
	if err != nil {
		return nil, err
	}
	return newProductPage(items, total, page, limit), nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	// Inactive or sold-out products do not exist for the storefront
	if !product.IsActive || product.Stock <= 0 {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) ListAdminProducts(q AdminProductQuery) (*ProductPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 50
	}

	items, total, err := s.productRepo.Find(repository.ProductFilter{
		Query:      q.Query,
		CategoryID: q.CategoryID,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	return newProductPage(items, total, page, limit), nil
}

func (s *catalogService) CreateProduct(input *ProductInput) (*model.Product, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		return nil, ErrInvalidCategory
	}

	existing, _ := s.productRepo.FindBySlug(input.Slug)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrSlugTaken
	}

	product := &model.Product{
		Name:       input.Name,
		Slug:       input.Slug,
		CategoryID: input.CategoryID,
		Price:      *input.Price,
		Stock:      *input.Stock,
		Images:     input.Images,
		Options:    input.Options,
		IsActive:   input.IsActive == nil || *input.IsActive,
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if product.Images == nil {
		product.Images = model.ImageList{}
	}
	if product.Options == nil {
		product.Options = model.OptionGroups{}
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, input *ProductInput) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.Slug != "" && input.Slug != existing.Slug {
		if taken, _ := s.productRepo.FindBySlug(input.Slug); taken != nil && taken.ID != uuid.Nil {
			return nil, ErrSlugTaken
		}
		existing.Slug = input.Slug
	}
	if input.CategoryID != uuid.Nil && input.CategoryID != existing.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			return nil, ErrInvalidCategory
		}
		existing.CategoryID = input.CategoryID
		existing.Category = nil
	}
	if input.Price != nil {
		existing.Price = *input.Price
	}
	if input.Stock != nil {
		existing.Stock = *input.Stock
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Images != nil {
		existing.Images = input.Images
	}
	if input.Options != nil {
		existing.Options = input.Options
	}
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *catalogService) SetProductsActive(ids []uuid.UUID, isActive bool) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoProductIDs
	}
	return s.productRepo.SetActiveBulk(ids, isActive)
}

func (s *catalogService) CreateCategory(input *CategoryInput) (*model.Category, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}

	existing, _ := s.categoryRepo.FindBySlug(input.Slug)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrSlugTaken
	}

	category := &model.Category{
		Name:     input.Name,
		Slug:     input.Slug,
		IsActive: input.IsActive == nil || *input.IsActive,
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(id uuid.UUID, input *CategoryInput) (*model.Category, error) {
	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.Slug != "" && input.Slug != existing.Slug {
		if taken, _ := s.categoryRepo.FindBySlug(input.Slug); taken != nil && taken.ID != uuid.Nil {
			return nil, ErrSlugTaken
		}
		existing.Slug = input.Slug
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(id)
}

func newProductPage(items []model.Product, total int64, page, limit int) *ProductPage {
	if items == nil {
		items = []model.Product{}
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return &ProductPage{Items: items, Total: total, Page: page, Pages: pages}
}
