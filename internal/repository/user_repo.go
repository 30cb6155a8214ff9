package repository

import (
	"go-storefront/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomerSummary is a customer row enriched with order aggregates
// for the back-office customer list.
type CustomerSummary struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       string          `json:"role"`
	CreatedAt  string          `json:"created_at"`
	OrderCount int64           `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
	Count() (int64, error)
	FindCustomers(search string) ([]CustomerSummary, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *userRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *userRepo) FindCustomers(search string) ([]CustomerSummary, error) {
	q := r.db.Model(&model.User{}).
		Select(`users.id, users.name, users.email, users.role,
			TO_CHAR(users.created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"') as created_at,
			COUNT(orders.id) as order_count,
			COALESCE(SUM(orders.total_amount), 0) as total_spent`).
		Joins("LEFT JOIN orders ON orders.user_id = users.id").
		Where("users.role <> ?", model.RoleAdmin).
		Group("users.id").
		Order("users.created_at DESC")

	if search != "" {
		q = q.Where("users.name ILIKE ? OR users.email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var customers []CustomerSummary
	err := q.Scan(&customers).Error
	return customers, err
}
