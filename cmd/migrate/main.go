package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/logger"
)

// migrate applies pending schema migrations and exits.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.Log.Level, Console: true}, "app", cfg.App.Name, "cmd", "migrate")

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		log.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("Migration failed", "error", err)
		db.Close()
		os.Exit(1)
	}
	log.Info("Migrations applied")
}
