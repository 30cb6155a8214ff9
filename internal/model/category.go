package model

// Category groups products for storefront navigation
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Slug        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}
