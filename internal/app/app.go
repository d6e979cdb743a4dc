package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL драйвер

	"pilgrimage/internal/config"
	"pilgrimage/internal/handler"
	"pilgrimage/internal/migrate"
	"pilgrimage/internal/repository"
	"pilgrimage/internal/service"
)

// OpenDB подключается к Postgres и, если включено, применяет миграции.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxConnections)
	if cfg.AutoMigrate {
		if _, err := migrate.Apply(ctx, db, cfg.MigrationsDir, log); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// NewServices собирает репозитории и сервисы поверх db.
func NewServices(db *sqlx.DB, log *slog.Logger) handler.Services {
	destinationRepo := repository.NewDestinationRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	foodPlanRepo := repository.NewFoodPlanRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	cleanerRepo := repository.NewCleanerRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	catalog := service.NewCatalogService(destinationRepo, packageRepo, hotelRepo, foodPlanRepo, log)
	return handler.Services{
		Auth:         service.NewAuthService(profileRepo),
		Catalog:      catalog,
		Bookings:     service.NewBookingService(bookingRepo, catalog, log),
		Destinations: service.NewDestinationService(destinationRepo),
		Hotels:       service.NewHotelService(hotelRepo),
		FoodPlans:    service.NewFoodPlanService(foodPlanRepo),
		Packages:     service.NewPackageService(packageRepo),
		Cleaners:     service.NewCleanerService(cleanerRepo, profileRepo),
		Schedules:    service.NewScheduleService(scheduleRepo, cleanerRepo, log),
		Pilgrims:     service.NewPilgrimService(profileRepo),
		Dashboard: service.NewDashboardService(destinationRepo, hotelRepo, foodPlanRepo, packageRepo,
			bookingRepo, profileRepo, cleanerRepo),
	}
}
