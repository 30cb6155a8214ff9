package service

import (
	"testing"

	"go-storefront/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCustomersExcludesAdmins(t *testing.T) {
	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.Create(&model.User{Name: "Shopper", Email: "s@example.com", Role: model.RoleCustomer}))
	require.NoError(t, userRepo.Create(&model.User{Name: "Boss", Email: "b@example.com", Role: model.RoleAdmin}))

	svc := NewCustomerService(userRepo, newFakeOrderRepo())
	customers, err := svc.ListCustomers("")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Shopper", customers[0].Name)
}

func TestGetCustomerStats(t *testing.T) {
	userRepo := newFakeUserRepo()
	customer := &model.User{Name: "Shopper", Email: "s@example.com", Role: model.RoleCustomer}
	require.NoError(t, userRepo.Create(customer))

	product := keyboardProduct()
	orderRepo := newFakeOrderRepo()
	orders := NewOrderService(newFakeProductRepo(product), orderRepo, nil)

	req := validOrderRequest(product.ID, 2) // totals 123.00
	req.UserID = customer.ID.String()
	_, err := orders.CreateOrder(req, nil)
	require.NoError(t, err)

	req = validOrderRequest(product.ID, 1) // totals 64.00
	req.UserID = customer.ID.String()
	_, err = orders.CreateOrder(req, nil)
	require.NoError(t, err)

	svc := NewCustomerService(userRepo, orderRepo)
	detail, err := svc.GetCustomer(customer.ID)
	require.NoError(t, err)

	assert.Equal(t, customer.ID, detail.User.ID)
	require.Len(t, detail.Orders, 2)
	assert.True(t, detail.Stats.TotalSpent.Equal(decimal.RequireFromString("187.00")))
	assert.True(t, detail.Stats.AverageOrderValue.Equal(decimal.RequireFromString("93.50")))
	require.NotNil(t, detail.Stats.LastOrderDate)

	_, err = svc.GetCustomer(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetCustomerWithoutOrders(t *testing.T) {
	userRepo := newFakeUserRepo()
	customer := &model.User{Name: "New", Email: "n@example.com", Role: model.RoleCustomer}
	require.NoError(t, userRepo.Create(customer))

	svc := NewCustomerService(userRepo, newFakeOrderRepo())
	detail, err := svc.GetCustomer(customer.ID)
	require.NoError(t, err)

	assert.NotNil(t, detail.Orders)
	assert.Empty(t, detail.Orders)
	assert.True(t, detail.Stats.TotalSpent.IsZero())
	assert.True(t, detail.Stats.AverageOrderValue.IsZero())
	assert.Nil(t, detail.Stats.LastOrderDate)
}
