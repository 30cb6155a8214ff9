package main

import (
	"log"
	"os"

	"go-storefront/internal/config"
	"go-storefront/internal/model"
	"go-storefront/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

// Resets the back-office admin password. Useful after a lost password
// on a dev or staging deployment.
func main() {
	cfg := config.Load()
	db := database.ConnectDB(cfg.Database.DSN())

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", email, err)
	}

	newPassword := os.Getenv("ADMIN_PASSWORD")
	if newPassword == "" {
		newPassword = "admin123"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", email)
}
