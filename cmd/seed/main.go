package main

import (
	"log"

	"go-storefront/internal/config"
	"go-storefront/internal/model"
	"go-storefront/pkg/database"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeds a demo catalog: categories plus a handful of products with
// option groups. Existing rows (matched by slug) are left untouched,
// so the seeder is safe to re-run.
func main() {
	cfg := config.Load()
	db := database.ConnectDB(cfg.Database.DSN())
	db.AutoMigrate(&model.User{}, &model.Category{}, &model.Product{}, &model.Order{}, &model.OrderItem{})

	categories := seedCategories(db)
	seedProducts(db, categories)

	log.Println("Seed complete")
}

func seedCategories(db *gorm.DB) map[string]*model.Category {
	defs := []model.Category{
		{Name: "Headphones", Slug: "headphones", IsActive: true},
		{Name: "Earbuds", Slug: "earbuds", IsActive: true},
		{Name: "Keyboards & Mice", Slug: "keyboards-mice", IsActive: true},
		{Name: "Monitors", Slug: "monitors", IsActive: true},
	}

	bySlug := make(map[string]*model.Category, len(defs))
	for i := range defs {
		var existing model.Category
		err := db.Where("slug = ?", defs[i].Slug).First(&existing).Error
		if err == nil {
			bySlug[existing.Slug] = &existing
			continue
		}
		if err := db.Create(&defs[i]).Error; err != nil {
			log.Fatalf("Failed to seed category %s: %v", defs[i].Slug, err)
		}
		bySlug[defs[i].Slug] = &defs[i]
	}
	return bySlug
}

func seedProducts(db *gorm.DB, categories map[string]*model.Category) {
	colorGroup := func(values ...string) model.OptionGroup {
		group := model.OptionGroup{Name: "Color"}
		for _, v := range values {
			group.Values = append(group.Values, model.OptionValue{Value: v, PriceDelta: decimal.Zero})
		}
		return group
	}

	products := []model.Product{
		{
			Name:        "Sony WH-1000XM5 Wireless Noise-Cancelling Headphones",
			Slug:        "sony-wh-1000xm5",
			Description: "Premium over-ear wireless headphones with industry-leading noise cancelling.",
			Images:      model.ImageList{"https://images.example.com/sony-wh-1000xm5.jpg"},
			Price:       decimal.NewFromInt(399),
			Stock:       25,
			CategoryID:  categories["headphones"].ID,
			Rating:      4.9,
			NumReviews:  45,
			IsActive:    true,
			Options:     model.OptionGroups{colorGroup("Black", "Platinum Silver")},
		},
		{
			Name:        "Apple AirPods Pro (2nd generation) with MagSafe Case",
			Slug:        "apple-airpods-pro-2nd-gen",
			Description: "True wireless earbuds with active noise cancellation.",
			Images:      model.ImageList{"https://images.example.com/airpods-pro-2.jpg"},
			Price:       decimal.NewFromInt(249),
			Stock:       40,
			CategoryID:  categories["earbuds"].ID,
			Rating:      4.5,
			NumReviews:  120,
			IsActive:    true,
			Options:     model.OptionGroups{},
		},
		{
			Name:        "Logitech MX Master 3S Wireless Mouse",
			Slug:        "logitech-mx-master-3s",
			Description: "An icon remastered for creators. Quiet Clicks, 8K DPI optical sensor.",
			Images:      model.ImageList{"https://images.example.com/mx-master-3s.jpg"},
			Price:       decimal.NewFromInt(119),
			Stock:       50,
			CategoryID:  categories["keyboards-mice"].ID,
			Rating:      4.7,
			NumReviews:  230,
			IsActive:    true,
			Options:     model.OptionGroups{colorGroup("Graphite", "Pale Grey")},
		},
		{
			Name:        "Keychron K8 Pro Wireless Mechanical Keyboard",
			Slug:        "keychron-k8-pro",
			Description: "Hot-swappable tenkeyless mechanical keyboard with QMK/VIA support.",
			Images:      model.ImageList{"https://images.example.com/keychron-k8-pro.jpg"},
			Price:       decimal.NewFromInt(99),
			Stock:       35,
			CategoryID:  categories["keyboards-mice"].ID,
			Rating:      4.6,
			NumReviews:  88,
			IsActive:    true,
			Options: model.OptionGroups{{
				Name: "Switch",
				Values: []model.OptionValue{
					{Value: "Gateron Red", PriceDelta: decimal.Zero},
					{Value: "Gateron Brown", PriceDelta: decimal.Zero},
					{Value: "Gateron Blue", PriceDelta: decimal.NewFromInt(5)},
				},
			}},
		},
		{
			Name:        "Dell UltraSharp U2723QE 27\" 4K Monitor",
			Slug:        "dell-ultrasharp-u2723qe",
			Description: "27-inch 4K UHD monitor with IPS Black panel and USB-C hub.",
			Images:      model.ImageList{"https://images.example.com/dell-u2723qe.jpg"},
			Price:       decimal.NewFromInt(619),
			Stock:       12,
			CategoryID:  categories["monitors"].ID,
			Rating:      4.8,
			NumReviews:  64,
			IsActive:    true,
			Options:     model.OptionGroups{},
		},
	}

	for i := range products {
		var existing model.Product
		if err := db.Where("slug = ?", products[i].Slug).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&products[i]).Error; err != nil {
			log.Fatalf("Failed to seed product %s: %v", products[i].Slug, err)
		}
	}
}
