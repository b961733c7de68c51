package main

// Applies database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"time"

	"internship-navigator/internal/shared/config"
	"internship-navigator/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	log.Println("migrations applied")
}
