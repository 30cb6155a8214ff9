package service

import (
	"time"

	"go-storefront/internal/model"
	"go-storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerDetail is the back-office view of a single customer with
// their order history and spend statistics.
type CustomerDetail struct {
	User   model.UserResponse `json:"user"`
	Orders []model.Order      `json:"orders"`
	Stats  CustomerStats      `json:"stats"`
}

type CustomerStats struct {
	TotalSpent        decimal.Decimal `json:"total_spent"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	LastOrderDate     *time.Time      `json:"last_order_date,omitempty"`
}

type CustomerService interface {
	ListCustomers(search string) ([]repository.CustomerSummary, error)
	GetCustomer(id uuid.UUID) (*CustomerDetail, error)
}

type customerService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

func NewCustomerService(userRepo repository.UserRepository, orderRepo repository.OrderRepository) CustomerService {
	return &customerService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

func (s *customerService) ListCustomers(search string) ([]repository.CustomerSummary, error) {
	customers, err := s.userRepo.FindCustomers(search)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []repository.CustomerSummary{}
	}
	return customers, nil
}

func (s *customerService) GetCustomer(id uuid.UUID) (*CustomerDetail, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	orders, err := s.orderRepo.FindByUser(id)
	if err != nil {
		return nil, err
	}

	stats := CustomerStats{
		TotalSpent:        decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	for _, order := range orders {
		stats.TotalSpent = stats.TotalSpent.Add(order.TotalAmount)
	}
	if len(orders) > 0 {
		stats.AverageOrderValue = stats.TotalSpent.
			Div(decimal.NewFromInt(int64(len(orders)))).
			Round(2)
		last := orders[0].CreatedAt // newest first
		stats.LastOrderDate = &last
	}
	if orders == nil {
		orders = []model.Order{}
	}

	return &CustomerDetail{
		User:   user.ToResponse(),
		Orders: orders,
		Stats:  stats,
	}, nil
}
