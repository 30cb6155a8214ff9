package service

import (
	"time"

	"go-storefront/internal/model"
	"go-storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardRange is a preset reporting window for the admin overview
type DashboardRange string

const (
	Range7d  DashboardRange = "7d"
	Range14d DashboardRange = "14d"
	Range1m  DashboardRange = "1m"
	Range6m  DashboardRange = "6m"
	RangeAll DashboardRange = "all"
)

// ParseDashboardRange falls back to 7d for unknown values
func ParseDashboardRange(raw string) DashboardRange {
	switch DashboardRange(raw) {
	case Range7d, Range14d, Range1m, Range6m, RangeAll:
		return DashboardRange(raw)
	}
	return Range7d
}

// from returns the inclusive window start, or nil for the full history
func (r DashboardRange) from(now time.Time) *time.Time {
	var start time.Time
	switch r {
	case Range7d:
		start = now.AddDate(0, 0, -6)
	case Range14d:
		start = now.AddDate(0, 0, -13)
	case Range1m:
		start = now.AddDate(0, -1, 0)
	case Range6m:
		start = now.AddDate(0, -6, 0)
	default:
		return nil
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	return &start
}

type DashboardStats struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	OrderCount    int64           `json:"order_count"`
	CustomerCount int64           `json:"customer_count"`
	PendingOrders int64           `json:"pending_orders"`
}

// RecentOrder is a dashboard row with the buyer resolved to a display
// name (registered user, else shipping name, else "Guest")
type RecentOrder struct {
	ID            string              `json:"id"`
	CreatedAt     time.Time           `json:"created_at"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	UserID        string              `json:"user_id,omitempty"`
	UserName      string              `json:"user_name"`
	UserEmail     string              `json:"user_email"`
	ItemsCount    int                 `json:"items_count"`
}

type DashboardResponse struct {
	SelectedRange     DashboardRange                  `json:"selected_range"`
	Stats             DashboardStats                  `json:"stats"`
	RecentOrders      []RecentOrder                   `json:"recent_orders"`
	PopularProducts   []model.Product                 `json:"popular_products"`
	SalesByDate       []repository.SalesByDate        `json:"sales_by_date"`
	OrderStatusCounts []repository.PaymentStatusCount `json:"order_status_counts"`
}

type DashboardService interface {
	GetDashboard(r DashboardRange) (*DashboardResponse, error)
}

type dashboardService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewDashboardService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) DashboardService {
	return &dashboardService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

func (s *dashboardService) GetDashboard(r DashboardRange) (*DashboardResponse, error) {
	from := r.from(time.Now())

	orderCount, err := s.orderRepo.CountSince(from)
	if err != nil {
		return nil, err
	}
	customerCount, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	pendingOrders, err := s.orderRepo.CountByPaymentStatus(model.PaymentPending, from)
	if err != nil {
		return nil, err
	}
	totalSales, err := s.orderRepo.TotalSales(from)
	if err != nil {
		return nil, err
	}
	recentRaw, err := s.orderRepo.FindRecent(13, from)
	if err != nil {
		return nil, err
	}
	popular, err := s.productRepo.FindTopSellers(5)
	if err != nil {
		return nil, err
	}
	salesByDate, err := s.orderRepo.SalesByDate(from)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.orderRepo.PaymentStatusCounts()
	if err != nil {
		return nil, err
	}

	recent := make([]RecentOrder, 0, len(recentRaw))
	for _, order := range recentRaw {
		row := RecentOrder{
			ID:            order.ID,
			CreatedAt:     order.CreatedAt,
			PaymentStatus: order.PaymentStatus,
			TotalAmount:   order.TotalAmount,
			ItemsCount:    len(order.Items),
		}
		switch {
		case order.User != nil:
			row.UserID = order.User.ID.String()
			row.UserName = order.User.Name
			row.UserEmail = order.User.Email
		case order.ShippingAddress.FullName != "":
			row.UserName = order.ShippingAddress.FullName
		default:
			row.UserName = "Guest"
		}
		recent = append(recent, row)
	}

	if salesByDate == nil {
		salesByDate = []repository.SalesByDate{}
	}
	if popular == nil {
		popular = []model.Product{}
	}

	return &DashboardResponse{
		SelectedRange: r,
		Stats: DashboardStats{
			TotalSales:    totalSales,
			OrderCount:    orderCount,
			CustomerCount: customerCount,
			PendingOrders: pendingOrders,
		},
		RecentOrders:      recent,
		PopularProducts:   popular,
		SalesByDate:       salesByDate,
		OrderStatusCounts: statusCounts,
	}, nil
}
