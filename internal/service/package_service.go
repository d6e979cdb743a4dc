package service

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx/types"

	"pilgrimage/internal/model"
)

// PackageService — управление туристическими пакетами в админке.
type PackageService struct {
	packages PackageStore
}

// NewPackageService создает сервис пакетов. Для Quote хранилище не нужно.
func NewPackageService(packages PackageStore) *PackageService {
	return &PackageService{packages: packages}
}

// List возвращает все пакеты для админки.
func (s *PackageService) List(ctx context.Context) ([]model.TravelPackage, error) {
	return s.packages.ListAll(ctx)
}

// Quote возвращает итоговую цену на человека для формы редактирования до сохранения.
func (s *PackageService) Quote(c model.CostBreakdown) (float64, error) {
	if c.TravelCost < 0 || c.AccommodationCost < 0 || c.FoodCost < 0 || c.TaxAmount < 0 {
		return 0, invalid("cost components must not be negative")
	}
	return c.Total(), nil
}

// normalizePackage проверяет форму и пересчитывает total_price из составляющих.
func normalizePackage(p *model.TravelPackage) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return invalid("name is required")
	}
	if p.Tier == "" {
		p.Tier = model.TierBasic
	}
	if !p.Tier.Valid() {
		return invalid("unknown tier %q", p.Tier)
	}
	if p.DurationDays == 0 {
		p.DurationDays = 1
	}
	if p.DurationDays < 0 {
		return invalid("duration must be positive")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return invalid("rating must be between 0 and 5")
	}
	var err error
	if p.DestinationID, err = optionalID("destination_id", p.DestinationID); err != nil {
		return err
	}
	if p.HotelID, err = optionalID("hotel_id", p.HotelID); err != nil {
		return err
	}
	if p.FoodPlanID, err = optionalID("food_plan_id", p.FoodPlanID); err != nil {
		return err
	}
	c := p.Costs()
	if c.TravelCost < 0 || c.AccommodationCost < 0 || c.FoodCost < 0 || c.TaxAmount < 0 {
		return invalid("cost components must not be negative")
	}
	p.ComputeTotal()
	p.Description = emptyToNil(p.Description)
	p.GroupSize = emptyToNil(p.GroupSize)
	p.TravelType = emptyToNil(p.TravelType)
	p.ImageURL = emptyToNil(p.ImageURL)
	p.Highlights = model.NormalizeList(p.Highlights)
	// JSON-декодер заполняет только JSONText.
	if raw := p.Itinerary.JSONText; len(raw) == 0 || string(raw) == "null" {
		p.Itinerary = types.NullJSONText{}
	} else {
		p.Itinerary.Valid = true
	}
	return nil
}

// Create добавляет пакет; новые пакеты активны.
func (s *PackageService) Create(ctx context.Context, p model.TravelPackage) (*model.TravelPackage, error) {
	if err := normalizePackage(&p); err != nil {
		return nil, err
	}
	p.IsActive = true
	return s.packages.Create(ctx, &p)
}

// Update перезаписывает пакет, пересчитывая total_price.
func (s *PackageService) Update(ctx context.Context, id string, p model.TravelPackage) (*model.TravelPackage, error) {
	if err := requireID("package id", id); err != nil {
		return nil, err
	}
	if err := normalizePackage(&p); err != nil {
		return nil, err
	}
	p.ID = id
	return s.packages.Update(ctx, &p)
}

// Delete удаляет пакет.
func (s *PackageService) Delete(ctx context.Context, id string) error {
	if err := requireID("package id", id); err != nil {
		return err
	}
	return s.packages.Delete(ctx, id)
}
