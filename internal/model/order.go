package model

import (
	"crypto/rand"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus of an order's (simulated) charge
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// OrderStatus is the fulfillment status of an order
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a member of the fulfillment enum
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// TerminalOrderStatus reports whether s allows no further transitions
func TerminalOrderStatus(s OrderStatus) bool {
	return s == OrderDelivered || s == OrderCancelled
}

// ShippingAddress is embedded into the order row
type ShippingAddress struct {
	FullName     string `gorm:"type:varchar(255)" json:"full_name"`
	AddressLine1 string `gorm:"type:varchar(255)" json:"address_line1"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"address_line2,omitempty"`
	City         string `gorm:"type:varchar(120)" json:"city"`
	PostalCode   string `gorm:"type:varchar(20)" json:"postal_code"`
	Country      string `gorm:"type:varchar(120)" json:"country"`
}

// PaymentInfo keeps only the method and the last four card digits.
// The full PAN is never persisted.
type PaymentInfo struct {
	Method string `gorm:"type:varchar(20)" json:"method"`
	Last4  string `gorm:"type:varchar(4)" json:"last4"`
}

// ChosenOption is a name/value pair the shopper picked for a line item
type ChosenOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ChosenOptions is stored as a JSONB column on the line item row.
type ChosenOptions []ChosenOption

func (c ChosenOptions) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	return string(b), err
}

func (c *ChosenOptions) Scan(value interface{}) error {
	return scanJSON(value, c)
}

// OrderItem is a frozen snapshot of a product at order time. Later
// catalog changes must not alter it.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   string          `gorm:"type:char(24);index;not null" json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	Image     string          `gorm:"type:text" json:"image,omitempty"`
	Options   ChosenOptions   `gorm:"type:jsonb" json:"options,omitempty"`
}

// Order is the priced, durable result of a checkout. It is never
// deleted, only transitioned through fulfillment statuses.
type Order struct {
	ID              string          `gorm:"type:char(24);primaryKey" json:"id"`
	ShortCode       string          `gorm:"type:char(6);index;not null" json:"short_code"`
	UserID          *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"` // nil => guest order
	User            *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);default:pending" json:"payment_status"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:pending" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_amount"`
	PaymentInfo     PaymentInfo     `gorm:"embedded;embeddedPrefix:payment_" json:"payment_info"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewOrderID returns a fresh 24-character lowercase hex identifier.
// The length matters: the public tracking endpoint distinguishes full
// identifiers (24 hex chars) from short codes (6 hex chars).
func NewOrderID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// a time-derived id rather than panicking mid-checkout.
		return hex.EncodeToString([]byte(time.Now().Format("060102150405")))[:24]
	}
	return hex.EncodeToString(b[:])
}

// ShortCodeOf derives the human-shareable tracking code from an order id
func ShortCodeOf(id string) string {
	if len(id) < 6 {
		return id
	}
	return id[len(id)-6:]
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = NewOrderID()
	}
	if o.ShortCode == "" {
		o.ShortCode = ShortCodeOf(o.ID)
	}
	return
}
