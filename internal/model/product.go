package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OptionValue is a selectable value inside an option group, with an
// optional signed price adjustment applied on top of the base price.
type OptionValue struct {
	Value      string          `json:"value"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// OptionGroup is a configurable product attribute (e.g. "Color") and
// the values a shopper can pick from.
type OptionGroup struct {
	Name   string        `json:"name"`
	Values []OptionValue `json:"values"`
}

// OptionGroups is stored as a JSONB column on the product row.
type OptionGroups []OptionGroup

func (o OptionGroups) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	return string(b), err
}

func (o *OptionGroups) Scan(value interface{}) error {
	return scanJSON(value, o)
}

// ImageList is an ordered list of image URLs stored as JSONB.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ImageList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported column type for JSON scan")
	}
}

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Slug        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Images      ImageList       `gorm:"type:jsonb" json:"images"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Stock       int             `gorm:"default:0;check:stock >= 0" json:"stock"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	Rating      float64         `gorm:"default:0" json:"rating"`
	NumReviews  int             `gorm:"default:0" json:"num_reviews"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	SalesCount  int             `gorm:"default:0" json:"sales_count"`
	Options     OptionGroups    `gorm:"type:jsonb" json:"options"`
}

// OptionDelta resolves the price delta for a chosen option name/value.
// A name or value that does not exist on the product contributes zero;
// the order flow deliberately does not reject unknown options.
func (p *Product) OptionDelta(name, value string) decimal.Decimal {
	for _, group := range p.Options {
		if group.Name != name {
			continue
		}
		for _, v := range group.Values {
			if v.Value == value {
				return v.PriceDelta
			}
		}
	}
	return decimal.Zero
}
