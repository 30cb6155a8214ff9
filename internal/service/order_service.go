package service

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"go-storefront/internal/model"
	"go-storefront/internal/repository"
	"go-storefront/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrAddressIncomplete  = errors.New("shipping address is incomplete")
	ErrUnsupportedPayment = errors.New("unsupported payment method in this demo")
	ErrPaymentIncomplete  = errors.New("payment details are incomplete")
	ErrInvalidCardNumber  = errors.New("invalid card number")
	ErrInvalidCvc         = errors.New("invalid CVC")
	ErrInvalidExpiry      = errors.New("invalid expiry date format")
	ErrInvalidExpiryMonth = errors.New("invalid expiry month")
	ErrNoValidProducts    = errors.New("no valid products found in cart")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderCodeRequired  = errors.New("order code is required")
	ErrNotOrderOwner      = errors.New("not allowed")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrOrderFinalized     = errors.New("order is already finalized")
)

// InsufficientStockError names the offending product and the
// available vs. requested quantities.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for %s. Available: %d, requested: %d",
		e.ProductName, e.Available, e.Requested)
}

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	cvcPattern        = regexp.MustCompile(`^\d{3}$`)
	expiryPattern     = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	fullOrderIDForm   = regexp.MustCompile(`^[0-9a-f]{24}$`)
	shortCodeForm     = regexp.MustCompile(`^[0-9a-f]{6}$`)
)

// taxRate is a flat rate applied to the subtotal, not jurisdictional.
var taxRate = decimal.NewFromFloat(0.18)

// ShippingFee is a flat lookup by destination country.
func ShippingFee(country string) decimal.Decimal {
	switch {
	case strings.EqualFold(country, "Turkiye"), strings.EqualFold(country, "Türkiye"):
		return decimal.NewFromInt(5)
	case strings.EqualFold(country, "United States"):
		return decimal.NewFromInt(15)
	default:
		return decimal.NewFromInt(10)
	}
}

// CartItem is one client-submitted cart line
type CartItem struct {
	ProductID string               `json:"product_id"`
	Quantity  int                  `json:"quantity"`
	Options   []model.ChosenOption `json:"options"`
}

type AddressInput struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

type PaymentDetails struct {
	CardName   string `json:"card_name"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	Cvc        string `json:"cvc"`
}

type CreateOrderRequest struct {
	Items           []CartItem      `json:"items"`
	ShippingAddress AddressInput    `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentDetails  *PaymentDetails `json:"payment_details"`
	// UserID optionally attaches an identity to an unauthenticated
	// checkout. A verified token identity always wins over it.
	UserID string `json:"user_id"`
}

// TrackingView is the reduced public view returned by the tracking
// lookup; it leaks no address or payment details beyond the name.
type TrackingView struct {
	ID            string              `json:"id"`
	CreatedAt     string              `json:"created_at"`
	ShortCode     string              `json:"short_code"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	Status        model.OrderStatus   `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	ShippingName  string              `json:"shipping_name"`
}

type OrderService interface {
	CreateOrder(req *CreateOrderRequest, authUserID *uuid.UUID) (*model.Order, error)
	GetOrder(id string, requester *uuid.UUID, isAdmin bool) (*model.Order, error)
	ListUserOrders(userID uuid.UUID) ([]model.Order, error)
	ListOrders() ([]model.Order, error)
	Track(code string) (*TrackingView, error)
	UpdateStatus(id string, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	hub         *ws.Hub
}

func NewOrderService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository, hub *ws.Hub) OrderService {
	return &orderService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		hub:         hub,
	}
}

// CreateOrder converts a client-submitted cart into a durable, priced
// order. Steps 1-4 (validation, resolution, pricing, stock pre-check)
// are pure reads; inventory is only touched by the conditional
// per-line commit, and every committed line is compensated if a later
// line or the order insert fails.
func (s *orderService) CreateOrder(req *CreateOrderRequest, authUserID *uuid.UUID) (*model.Order, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, ErrCartEmpty
	}

	addr := req.ShippingAddress
	if addr.FullName == "" || addr.AddressLine1 == "" || addr.City == "" ||
		addr.PostalCode == "" || addr.Country == "" {
		return nil, ErrAddressIncomplete
	}

	method := req.PaymentMethod
	if method == "" {
		method = "card"
	}
	if method != "card" {
		return nil, ErrUnsupportedPayment
	}

	last4, err := validatePaymentDetails(req.PaymentDetails)
	if err != nil {
		return nil, err
	}

	// Resolve all referenced products in one batch lookup. Lines whose
	// product no longer exists are dropped rather than failing the
	// whole order.
	var productIDs []uuid.UUID
	for _, item := range req.Items {
		if id, err := uuid.Parse(item.ProductID); err == nil {
			productIDs = append(productIDs, id)
		}
	}

	var products []model.Product
	if len(productIDs) > 0 {
		products, err = s.productRepo.FindManyByIDs(productIDs)
		if err != nil {
			return nil, err
		}
	}
	productByID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	var items []model.OrderItem
	for _, cartItem := range req.Items {
		id, err := uuid.Parse(cartItem.ProductID)
		if err != nil {
			continue
		}
		product, ok := productByID[id]
		if !ok {
			continue
		}

		quantity := cartItem.Quantity
		if quantity < 1 {
			quantity = 1
		}

		unitPrice := product.Price
		for _, chosen := range cartItem.Options {
			unitPrice = unitPrice.Add(product.OptionDelta(chosen.Name, chosen.Value))
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}

		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     unitPrice.Round(2),
			Quantity:  quantity,
			Image:     image,
			Options:   cartItem.Options,
		})
	}

	if len(items) == 0 {
		return nil, ErrNoValidProducts
	}

	// Stock pre-check against the batch read. The authoritative guard
	// is the conditional update below; this pass just produces the
	// detailed error before any inventory is touched.
	for _, item := range items {
		product := productByID[item.ProductID]
		if product.Stock < item.Quantity {
			return nil, &InsufficientStockError{
				ProductName: item.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}
	}

	// Commit inventory line by line. CommitSale only succeeds when
	// stock >= quantity at the storage layer, so a concurrent order
	// racing us cannot overdraw. On any failure the lines already
	// committed are restored before returning.
	for i, item := range items {
		ok, err := s.productRepo.CommitSale(item.ProductID, item.Quantity)
		if err == nil && !ok {
			product := productByID[item.ProductID]
			err = &InsufficientStockError{
				ProductName: item.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}
		if err != nil {
			s.compensate(items[:i])
			return nil, err
		}
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = ShippingFee(addr.Country)
	}
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(shipping).Add(tax).Round(2)

	order := &model.Order{
		ID:     model.NewOrderID(),
		UserID: resolveOrderUser(authUserID, req.UserID),
		Items:  items,
		ShippingAddress: model.ShippingAddress{
			FullName:     addr.FullName,
			AddressLine1: addr.AddressLine1,
			AddressLine2: addr.AddressLine2,
			City:         addr.City,
			PostalCode:   addr.PostalCode,
			Country:      addr.Country,
		},
		PaymentStatus: model.PaymentPaid, // simulated charge succeeds for any valid card
		Status:        model.OrderPending,
		TotalAmount:   total,
		PaymentInfo: model.PaymentInfo{
			Method: method,
			Last4:  last4,
		},
	}
	order.ShortCode = model.ShortCodeOf(order.ID)

	if err := s.orderRepo.Create(order); err != nil {
		s.compensate(items)
		return nil, err
	}

	go s.hub.Publish(ws.Event{
		Type: "order_created",
		Payload: map[string]interface{}{
			"order_id":     order.ID,
			"short_code":   order.ShortCode,
			"total_amount": order.TotalAmount,
			"items":        len(order.Items),
		},
		Message: fmt.Sprintf("New order #%s (%s)", order.ShortCode, order.TotalAmount.StringFixed(2)),
	})

	return order, nil
}

// validatePaymentDetails checks the card form shape only; no real
// settlement occurs. It returns the last four digits for persistence,
// the full PAN is never stored.
func validatePaymentDetails(details *PaymentDetails) (string, error) {
	if details == nil || details.CardName == "" || details.CardNumber == "" ||
		details.Expiry == "" || details.Cvc == "" {
		return "", ErrPaymentIncomplete
	}

	cardNumber := whitespacePattern.ReplaceAllString(details.CardNumber, "")
	if !cardNumberPattern.MatchString(cardNumber) {
		return "", ErrInvalidCardNumber
	}

	if !cvcPattern.MatchString(strings.TrimSpace(details.Cvc)) {
		return "", ErrInvalidCvc
	}

	match := expiryPattern.FindStringSubmatch(details.Expiry)
	if match == nil {
		return "", ErrInvalidExpiry
	}
	month := (int(match[1][0]-'0') * 10) + int(match[1][1]-'0')
	if month < 1 || month > 12 {
		return "", ErrInvalidExpiryMonth
	}

	return cardNumber[len(cardNumber)-4:], nil
}

func resolveOrderUser(authUserID *uuid.UUID, bodyUserID string) *uuid.UUID {
	if authUserID != nil {
		return authUserID
	}
	if bodyUserID != "" {
		if id, err := uuid.Parse(bodyUserID); err == nil {
			return &id
		}
	}
	return nil // guest order
}

func (s *orderService) compensate(items []model.OrderItem) {
	for _, item := range items {
		if err := s.productRepo.RestoreSale(item.ProductID, item.Quantity); err != nil {
			log.Printf("order: failed to restore stock for product %s: %v", item.ProductID, err)
		}
	}
}

func (s *orderService) GetOrder(id string, requester *uuid.UUID, isAdmin bool) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID != nil && !isAdmin {
		if requester == nil || *order.UserID != *requester {
			return nil, ErrNotOrderOwner
		}
	}
	return order, nil
}

func (s *orderService) ListUserOrders(userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByUser(userID)
}

func (s *orderService) ListOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

// Track resolves an order from a human-supplied code. A 24-hex-char
// code is a full identifier, a 6-hex-char code is a short code;
// anything else is not found.
func (s *orderService) Track(code string) (*TrackingView, error) {
	normalized := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(code), "#"))
	if normalized == "" {
		return nil, ErrOrderCodeRequired
	}

	var order *model.Order
	var err error
	switch {
	case fullOrderIDForm.MatchString(normalized):
		order, err = s.orderRepo.FindByID(normalized)
	case shortCodeForm.MatchString(normalized):
		order, err = s.orderRepo.FindByShortCode(normalized)
	default:
		return nil, ErrOrderNotFound
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	shippingName := order.ShippingAddress.FullName
	if shippingName == "" {
		shippingName = "Customer"
	}

	return &TrackingView{
		ID:            order.ID,
		CreatedAt:     order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		ShortCode:     order.ShortCode,
		PaymentStatus: order.PaymentStatus,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		ShippingName:  shippingName,
	}, nil
}

// UpdateStatus transitions the fulfillment status. Moving into
// cancelled restores stock and reduces the sales counter for every
// line item; re-cancelling is a no-op for inventory.
func (s *orderService) UpdateStatus(id string, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	oldStatus := order.Status
	if status == oldStatus {
		return order, nil
	}
	if model.TerminalOrderStatus(oldStatus) {
		return nil, ErrOrderFinalized
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status

	if status == model.OrderCancelled {
		s.compensate(order.Items)
	}

	go s.hub.Publish(ws.Event{
		Type: "order_status_changed",
		Payload: map[string]interface{}{
			"order_id":   order.ID,
			"short_code": order.ShortCode,
			"old_status": oldStatus,
			"new_status": status,
		},
		Message: fmt.Sprintf("Order #%s moved from %s to %s", order.ShortCode, oldStatus, status),
	})

	return order, nil
}
