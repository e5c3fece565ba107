// Command budgetapp-init creates or resets the application database.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/marcus-gray/budgetapp/internal/config"
	"github.com/marcus-gray/budgetapp/internal/db"
)

func main() {
	reset := flag.Bool("reset", false, "drop all tables and recreate them")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.Open(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Fatal("open database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	defer conn.Close()

	if *reset {
		logger.Warn("resetting database, all data will be lost", zap.String("path", cfg.DatabasePath))
		if err := db.Reset(ctx, conn); err != nil {
			logger.Fatal("reset database", zap.Error(err))
		}
	} else if err := db.Migrate(ctx, conn); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	logger.Info("database ready",
		zap.String("path", cfg.DatabasePath),
		zap.Strings("tables", db.Tables))
}
