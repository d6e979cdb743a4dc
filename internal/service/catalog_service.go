package service

import (
	"context"
	"log/slog"

	"pilgrimage/internal/model"
)

// CatalogService содержит логику публичного каталога: места паломничества и пакеты.
type CatalogService struct {
	destinations DestinationStore
	packages     PackageStore
	hotels       HotelStore
	foodPlans    FoodPlanStore
	log          *slog.Logger
}

// NewCatalogService создает новый сервис каталога.
func NewCatalogService(destinations DestinationStore, packages PackageStore, hotels HotelStore, foodPlans FoodPlanStore, log *slog.Logger) *CatalogService {
	return &CatalogService{destinations: destinations, packages: packages, hotels: hotels, foodPlans: foodPlans, log: log}
}

// PackageDetails — пакет вместе с гостиницей, питанием и местом паломничества.
// Любая из связанных частей может отсутствовать.
type PackageDetails struct {
	Package     *model.TravelPackage `json:"package"`
	Hotel       *model.Hotel         `json:"hotel"`
	FoodPlan    *model.FoodPlan      `json:"food_plan"`
	Destination *model.Destination   `json:"destination"`
}

// ListDestinations возвращает активные места паломничества.
func (s *CatalogService) ListDestinations(ctx context.Context) ([]model.Destination, error) {
	return s.destinations.List(ctx, true)
}

// ListPackages возвращает активные пакеты, избранные первыми.
func (s *CatalogService) ListPackages(ctx context.Context) ([]model.TravelPackage, error) {
	return s.packages.ListActive(ctx)
}

// PackageDetails загружает пакет, затем по очереди гостиницу, план питания и место паломничества.
// Ошибка при загрузке связанной записи не прерывает запрос: соответствующее поле остается пустым.
func (s *CatalogService) PackageDetails(ctx context.Context, id string) (*PackageDetails, error) {
	if err := requireID("package id", id); err != nil {
		return nil, err
	}
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details := &PackageDetails{Package: pkg}
	if pkg.HotelID != nil {
		if details.Hotel, err = s.hotels.GetByID(ctx, *pkg.HotelID); err != nil {
			s.log.Warn("package hotel unavailable", "package_id", id, "hotel_id", *pkg.HotelID, "error", err)
		}
	}
	if pkg.FoodPlanID != nil {
		if details.FoodPlan, err = s.foodPlans.GetByID(ctx, *pkg.FoodPlanID); err != nil {
			s.log.Warn("package food plan unavailable", "package_id", id, "food_plan_id", *pkg.FoodPlanID, "error", err)
		}
	}
	if pkg.DestinationID != nil {
		if details.Destination, err = s.destinations.GetByID(ctx, *pkg.DestinationID); err != nil {
			s.log.Warn("package destination unavailable", "package_id", id, "destination_id", *pkg.DestinationID, "error", err)
		}
	}
	return details, nil
}
