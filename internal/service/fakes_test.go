package service

import (
	"errors"
	"sync"
	"time"

	"go-storefront/internal/model"
	"go-storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeProductRepo keeps products in a map and mimics the conditional
// stock guard of the real repository. The mutex plays the role of the
// database's row-level atomicity so concurrent checkouts behave.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Find(filter repository.ProductFilter) ([]model.Product, int64, error) {
	var items []model.Product
	for _, p := range r.products {
		if filter.OnlyOnSale && (!p.IsActive || p.Stock <= 0) {
			continue
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		items = append(items, *p)
	}
	return items, int64(len(items)), nil
}

func (r *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindBySlug(slug string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindManyByIDs(ids []uuid.UUID) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []model.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) FindTopSellers(limit int) ([]model.Product, error) {
	var products []model.Product
	for _, p := range r.products {
		if p.IsActive {
			products = append(products, *p)
		}
	}
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (r *fakeProductRepo) Update(product *model.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) SetActiveBulk(ids []uuid.UUID, isActive bool) (int64, error) {
	var updated int64
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			p.IsActive = isActive
			updated++
		}
	}
	return updated, nil
}

func (r *fakeProductRepo) CommitSale(id uuid.UUID, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	p.SalesCount += quantity
	return true, nil
}

func (r *fakeProductRepo) RestoreSale(id uuid.UUID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil
	}
	p.Stock += quantity
	p.SalesCount -= quantity
	return nil
}

// fakeOrderRepo stores orders in memory; failCreate simulates a store
// outage during the order insert.
type fakeOrderRepo struct {
	mu         sync.Mutex
	orders     map[string]*model.Order
	failCreate bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*model.Order)}
}

func (r *fakeOrderRepo) Create(order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("store unavailable")
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) FindByID(id string) (*model.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) FindByShortCode(code string) (*model.Order, error) {
	for _, order := range r.orders {
		if order.ShortCode == code {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) FindByUser(userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	for _, order := range r.orders {
		if order.UserID != nil && *order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	for _, order := range r.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *fakeOrderRepo) FindRecent(limit int, from *time.Time) ([]model.Order, error) {
	orders, _ := r.FindAll()
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (r *fakeOrderRepo) UpdateStatus(id string, status model.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) CountSince(from *time.Time) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) CountByPaymentStatus(status model.PaymentStatus, from *time.Time) (int64, error) {
	var count int64
	for _, order := range r.orders {
		if order.PaymentStatus == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeOrderRepo) TotalSales(from *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, order := range r.orders {
		if order.PaymentStatus == model.PaymentPaid {
			total = total.Add(order.TotalAmount)
		}
	}
	return total, nil
}

func (r *fakeOrderRepo) SalesByDate(from *time.Time) ([]repository.SalesByDate, error) {
	return nil, nil
}

func (r *fakeOrderRepo) PaymentStatusCounts() ([]repository.PaymentStatusCount, error) {
	return nil, nil
}

// fakeUserRepo backs the auth and customer service tests
type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Count() (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) FindCustomers(search string) ([]repository.CustomerSummary, error) {
	var customers []repository.CustomerSummary
	for _, u := range r.users {
		if u.Role == model.RoleAdmin {
			continue
		}
		customers = append(customers, repository.CustomerSummary{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		})
	}
	return customers, nil
}

// fakeCategoryRepo backs the catalog service tests
type fakeCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newFakeCategoryRepo(categories ...*model.Category) *fakeCategoryRepo {
	repo := &fakeCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
	for _, c := range categories {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepo) Create(category *model.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	for _, c := range r.categories {
		categories = append(categories, *c)
	}
	return categories, nil
}

func (r *fakeCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) FindBySlug(slug string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) Update(category *model.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}
