package repository

import (
	"strings"

	"go-storefront/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductFilter narrows and orders a product listing query
type ProductFilter struct {
	Query      string
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	MinRating  *float64
	Sort       string // price-asc, price-desc, rating, newest, sales
	OnlyOnSale bool   // active products with stock > 0
	Page       int
	Limit      int
}

type ProductRepository interface {
	Create(product *model.Product) error
	Find(filter ProductFilter) ([]model.Product, int64, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	FindManyByIDs(ids []uuid.UUID) ([]model.Product, error)
	FindTopSellers(limit int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	SetActiveBulk(ids []uuid.UUID, isActive bool) (int64, error)
	CommitSale(id uuid.UUID, quantity int) (bool, error)
	RestoreSale(id uuid.UUID, quantity int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) Find(filter ProductFilter) ([]model.Product, int64, error) {
	q := r.db.Model(&model.Product{})

	if filter.OnlyOnSale {
		q = q.Where("is_active = ? AND stock > 0", true)
	}
	if filter.Query != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinRating != nil {
		q = q.Where("rating >= ?", *filter.MinRating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch strings.ToLower(filter.Sort) {
	case "price-asc":
		q = q.Order("price ASC")
	case "price-desc":
		q = q.Order("price DESC")
	case "rating":
		q = q.Order("rating DESC")
	case "sales":
		q = q.Order("sales_count DESC")
	default:
		q = q.Order("created_at DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 12
	}

	var products []model.Product
	err := q.Preload("Category").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySlug(slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "slug = ?", slug).Error
	return &product, err
}

func (r *productRepo) FindManyByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) FindTopSellers(limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("is_active = ?", true).
		Order("sales_count DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) SetActiveBulk(ids []uuid.UUID, isActive bool) (int64, error) {
	res := r.db.Model(&model.Product{}).
		Where("id IN ?", ids).
		Update("is_active", isActive)
	return res.RowsAffected, res.Error
}

// CommitSale decrements stock and bumps the sales counter in one
// conditional UPDATE guarded by stock >= quantity. It returns false
// when the guard rejects the row, so two concurrent orders can never
// overdraw inventory against a stale read.
func (r *productRepo) CommitSale(id uuid.UUID, quantity int) (bool, error) {
	res := r.db.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock - ?", quantity),
			"sales_count": gorm.Expr("sales_count + ?", quantity),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RestoreSale is the compensating inverse of CommitSale. It does not
// re-check that the product still exists or keep the counters
// non-negative; it is a manual inverse update, not a rollback.
func (r *productRepo) RestoreSale(id uuid.UUID, quantity int) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock + ?", quantity),
			"sales_count": gorm.Expr("sales_count - ?", quantity),
		}).Error
}
