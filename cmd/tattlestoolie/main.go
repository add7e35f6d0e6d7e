// Command tattlestoolie bootstraps the tip-reporting database:
// connect, ensure schema, and optionally seed an admin account.
// The desktop UI links against the internal packages directly and
// runs this same sequence at startup.
package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/tattlestoolie/tattlestoolie/internal/config"
	"github.com/tattlestoolie/tattlestoolie/internal/database"
	"github.com/tattlestoolie/tattlestoolie/internal/repository"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connection failed; fix DB credentials or start MySQL and try again",
			zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName), zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	rep, err := database.EnsureSchema(ctx, db, cfg.DBName)
	if err != nil {
		logger.Fatal("schema creation failed", zap.Error(err))
	}
	if rep.ProbeErr != nil {
		logger.Warn("schema migration probe failed; continuing", zap.Error(rep.ProbeErr))
	}
	if rep.DescriptionNarrowed {
		logger.Info("narrowed tips.description to VARCHAR(500)")
	}
	if rep.NarrowingSkipped {
		logger.Info("kept unbounded tips.description; existing rows exceed 500 chars")
	}
	if rep.LegacyIDColumn {
		logger.Warn("tips table still carries the legacy tips_ID column")
	}
	logger.Info("database ready", zap.String("database", cfg.DBName))

	if cfg.SeedAdmin {
		if cfg.AdminUser == "" || cfg.AdminPassword == "" {
			logger.Warn("SEED_ADMIN set but ADMIN_USER or ADMIN_PASSWORD missing; skipping seeding")
			return
		}
		users := repository.NewUserRepo(db, cfg.PasswordScheme, cfg.BcryptCost)
		if err := users.SeedAdmin(ctx, cfg.AdminUser, cfg.AdminPassword, cfg.AdminEmail); err != nil {
			logger.Error("failed to seed admin user", zap.String("username", cfg.AdminUser), zap.Error(err))
			return
		}
		logger.Info("admin user seeded", zap.String("username", cfg.AdminUser))
	}
}
