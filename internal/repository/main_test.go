package repository

import (
	"log"
	"os"
	"testing"

	"parley/internal/config"
	"parley/internal/database"

	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Repository tests skipped: failed to load test config: %v", err)
		os.Exit(0)
	}

	testDB, err = database.Connect(cfg)
	if err != nil {
		log.Printf("Repository tests skipped: test database unavailable: %v", err)
		os.Exit(0)
	}

	code := m.Run()

	truncateTables(testDB)

	os.Exit(code)
}

func truncateTables(db *gorm.DB) {
	db.Exec("TRUNCATE TABLE messages, read_states, conversations, connection_requests, user_blocks, users CASCADE")
}
