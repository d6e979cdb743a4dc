package service

import (
	"context"
	"strings"

	"pilgrimage/internal/model"
)

// DestinationService — управление местами паломничества в админке.
type DestinationService struct {
	destinations DestinationStore
}

// NewDestinationService создает сервис мест паломничества.
func NewDestinationService(destinations DestinationStore) *DestinationService {
	return &DestinationService{destinations: destinations}
}

// List возвращает все места паломничества для админки.
func (s *DestinationService) List(ctx context.Context) ([]model.Destination, error) {
	return s.destinations.List(ctx, false)
}

func normalizeDestination(d *model.Destination) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return invalid("name is required")
	}
	d.Location = emptyToNil(d.Location)
	d.Description = emptyToNil(d.Description)
	d.ImageURL = emptyToNil(d.ImageURL)
	d.Highlights = model.NormalizeList(d.Highlights)
	return nil
}

// Create добавляет место паломничества; новые места всегда активны.
func (s *DestinationService) Create(ctx context.Context, d model.Destination) (*model.Destination, error) {
	if err := normalizeDestination(&d); err != nil {
		return nil, err
	}
	d.IsActive = true
	return s.destinations.Create(ctx, &d)
}

// Update перезаписывает место паломничества.
func (s *DestinationService) Update(ctx context.Context, id string, d model.Destination) (*model.Destination, error) {
	if err := requireID("destination id", id); err != nil {
		return nil, err
	}
	if err := normalizeDestination(&d); err != nil {
		return nil, err
	}
	d.ID = id
	return s.destinations.Update(ctx, &d)
}

// Delete удаляет место паломничества; ссылки из гостиниц и пакетов обрабатывает БД.
func (s *DestinationService) Delete(ctx context.Context, id string) error {
	if err := requireID("destination id", id); err != nil {
		return err
	}
	return s.destinations.Delete(ctx, id)
}
