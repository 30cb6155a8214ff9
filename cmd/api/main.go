package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-storefront/internal/config"
	"go-storefront/internal/handler"
	"go-storefront/internal/middleware"
	"go-storefront/internal/model"
	"go-storefront/internal/repository"
	"go-storefront/internal/service"
	"go-storefront/internal/ws"
	"go-storefront/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Config (reads .env when present)
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg.Database.DSN())
	db.AutoMigrate(&model.User{}, &model.Category{}, &model.Product{}, &model.Order{}, &model.OrderItem{})

	// 3. Seed default admin account
	seedAdmin(db)

	// 4. Setup WebSocket Hub for the back-office event stream
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	orderService := service.NewOrderService(productRepo, orderRepo, wsHub)
	dashService := service.NewDashboardService(orderRepo, productRepo, userRepo)
	customerService := service.NewCustomerService(userRepo, orderRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	dashHandler := handler.NewDashboardHandler(dashService)
	adminProductHandler := handler.NewAdminProductHandler(catalogService)
	adminCategoryHandler := handler.NewAdminCategoryHandler(catalogService)
	adminOrderHandler := handler.NewAdminOrderHandler(orderService)
	adminCustomerHandler := handler.NewAdminCustomerHandler(customerService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Storefront API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.RequireAuth(), authHandler.Me)

	// Catalog reads are cached per full URL; write paths never go
	// through the cache, so each entry simply ages out.
	api.Get("/categories", readCache(60*time.Second), categoryHandler.List)
	api.Get("/products", readCache(30*time.Second), productHandler.List)
	api.Get("/products/:id", productHandler.Get)

	// Order flow
	orders := api.Group("/orders")
	orders.Post("/", middleware.OptionalAuth(), orderHandler.Create)
	orders.Get("/my", middleware.RequireAuth(), orderHandler.My)
	orders.Get("/track/:code", orderHandler.Track)
	orders.Get("/:id", middleware.RequireAuth(), orderHandler.Get)

	// ============ ADMIN ROUTES ============
	admin := api.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())

	admin.Get("/dashboard", dashHandler.Get)

	admin.Get("/products", adminProductHandler.List)
	admin.Post("/products", adminProductHandler.Create)
	admin.Put("/products/:id", adminProductHandler.Update)
	admin.Delete("/products/:id", adminProductHandler.Delete)
	admin.Patch("/products/bulk-status", adminProductHandler.BulkStatus)

	admin.Get("/categories", adminCategoryHandler.List)
	admin.Post("/categories", adminCategoryHandler.Create)
	admin.Put("/categories/:id", adminCategoryHandler.Update)
	admin.Delete("/categories/:id", adminCategoryHandler.Delete)

	admin.Get("/customers", adminCustomerHandler.List)
	admin.Get("/customers/:id", adminCustomerHandler.Get)

	admin.Get("/orders", adminOrderHandler.List)
	admin.Patch("/orders/:id/status", adminOrderHandler.UpdateStatus)

	// WebSocket Route (back-office order event stream)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// readCache caches GET responses per full request URL. Only mounted on
// low-staleness catalog reads, never on order data.
func readCache(maxAge time.Duration) fiber.Handler {
	return cache.New(cache.Config{
		Expiration: maxAge,
		KeyGenerator: func(c *fiber.Ctx) string {
			return utils.CopyString(c.OriginalURL())
		},
	})
}

// seedAdmin creates the default back-office account if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Name:  "Store Administrator",
		Email: email,
		Role:  model.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s", email)
}
