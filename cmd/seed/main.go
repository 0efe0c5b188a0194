package main

import (
	"context"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/infrastructure/config"
	"vandra-service/internal/infrastructure/persistence"
	"vandra-service/internal/interface/repository"
	"vandra-service/pkg/logger"
	"vandra-service/pkg/reference"
)

// Migrates the schema and loads the bundled airport list.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	db, err := persistence.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate PostgreSQL schema", "error", err)
	}

	records, err := reference.SeedAirports()
	if err != nil {
		log.Fatal("Failed to load airport seed", "error", err)
	}

	airports := make([]entity.Airport, len(records))
	for i, r := range records {
		airports[i] = entity.Airport{
			Code:      r.Code,
			Name:      r.Name,
			City:      r.City,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Timezone:  r.Timezone,
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := repository.NewGormAirportRepository(db).Upsert(ctx, airports); err != nil {
		log.Fatal("Failed to seed airports", "error", err)
	}
	log.Info("Seeded airports", "count", len(airports))
}
