package server

import (
	"testing"

	"parley/internal/config"
	"parley/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserBlock{},
		&models.ConnectionRequest{},
		&models.Conversation{},
		&models.Message{},
		&models.ReadState{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func setupHandlerTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)
	s, err := NewServerWithDeps(&config.Config{JWTSecret: "test-secret"}, db, nil)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return s, db
}

// asUser injects an authenticated user the way AuthRequired would.
func asUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "pw"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}
