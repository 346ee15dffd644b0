package main

import (
	"log"

	"github.com/oggyb/sms-gateway-connector/internal/config"
	"github.com/oggyb/sms-gateway-connector/internal/db/gormdb"
	msgRepo "github.com/oggyb/sms-gateway-connector/internal/repository/gorm/message"
)

func main() {
	// Load application configuration from env/.env.
	cfg := config.New()

	db, err := gormdb.New(cfg.PostgresDSN(), cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("[Migrate] Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Printf("[Migrate] Connected to database %q", cfg.DB.Name)

	if err := msgRepo.Migrate(db); err != nil {
		log.Fatalf("[Migrate] AutoMigrate failed: %v", err)
	}

	log.Println("[Migrate] sms_requests table is up to date.")
}
