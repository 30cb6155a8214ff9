package repository

import (
	"time"

	"go-storefront/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesByDate is one point of the dashboard revenue chart
type SalesByDate struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// PaymentStatusCount groups orders by payment status
type PaymentStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id string) (*model.Order, error)
	FindByShortCode(code string) (*model.Order, error)
	FindByUser(userID uuid.UUID) ([]model.Order, error)
	FindAll() ([]model.Order, error)
	FindRecent(limit int, from *time.Time) ([]model.Order, error)
	UpdateStatus(id string, status model.OrderStatus) error
	CountSince(from *time.Time) (int64, error)
	CountByPaymentStatus(status model.PaymentStatus, from *time.Time) (int64, error)
	TotalSales(from *time.Time) (decimal.Decimal, error)
	SalesByDate(from *time.Time) ([]SalesByDate, error)
	PaymentStatusCounts() ([]PaymentStatusCount, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepo) FindByID(id string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("User").First(&order, "id = ?", id).Error
	return &order, err
}

func (r *orderRepo) FindByShortCode(code string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").First(&order, "short_code = ?", code).Error
	return &order, err
}

func (r *orderRepo) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Preload("User").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindRecent(limit int, from *time.Time) ([]model.Order, error) {
	q := r.db.Preload("Items").Preload("User").Order("created_at DESC").Limit(limit)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	var orders []model.Order
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatus(id string, status model.OrderStatus) error {
	return r.db.Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepo) CountSince(from *time.Time) (int64, error) {
	q := r.db.Model(&model.Order{})
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *orderRepo) CountByPaymentStatus(status model.PaymentStatus, from *time.Time) (int64, error) {
	q := r.db.Model(&model.Order{}).Where("payment_status = ?", status)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *orderRepo) TotalSales(from *time.Time) (decimal.Decimal, error) {
	q := r.db.Model(&model.Order{}).Where("payment_status = ?", model.PaymentPaid)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	var total decimal.Decimal
	err := q.Select("COALESCE(SUM(total_amount), 0)").Scan(&total).Error
	return total, err
}

func (r *orderRepo) SalesByDate(from *time.Time) ([]SalesByDate, error) {
	q := r.db.Model(&model.Order{}).Where("payment_status = ?", model.PaymentPaid)
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}

	rows, err := q.
		Select("TO_CHAR(created_at, 'YYYY-MM-DD') as date, COALESCE(SUM(total_amount), 0) as total").
		Group("TO_CHAR(created_at, 'YYYY-MM-DD')").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SalesByDate
	for rows.Next() {
		var row SalesByDate
		if err := rows.Scan(&row.Date, &row.Total); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, nil
}

func (r *orderRepo) PaymentStatusCounts() ([]PaymentStatusCount, error) {
	var results []PaymentStatusCount
	err := r.db.Model(&model.Order{}).
		Select("payment_status as status, COUNT(*) as count").
		Group("payment_status").
		Order("count DESC").
		Scan(&results).Error
	return results, err
}
