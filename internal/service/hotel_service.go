package service

import (
	"context"
	"strings"

	"pilgrimage/internal/model"
)

const defaultHotelCategory = "Standard"

// HotelService — управление гостиницами в админке.
type HotelService struct {
	hotels HotelStore
}

// NewHotelService создает сервис гостиниц.
func NewHotelService(hotels HotelStore) *HotelService {
	return &HotelService{hotels: hotels}
}

// List возвращает гостиницы с названием места паломничества.
func (s *HotelService) List(ctx context.Context) ([]model.Hotel, error) {
	return s.hotels.List(ctx)
}

func normalizeHotel(h *model.Hotel) error {
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return invalid("name is required")
	}
	if err := requireID("destination_id", h.DestinationID); err != nil {
		return err
	}
	if h.Category == nil || strings.TrimSpace(*h.Category) == "" {
		c := defaultHotelCategory
		h.Category = &c
	}
	h.Address = emptyToNil(h.Address)
	h.ImageURL = emptyToNil(h.ImageURL)
	h.MapURL = emptyToNil(h.MapURL)
	h.ContactPhone = emptyToNil(h.ContactPhone)
	h.ContactEmail = emptyToNil(h.ContactEmail)
	h.RoomTypes = model.NormalizeList(h.RoomTypes)
	h.Facilities = model.NormalizeList(h.Facilities)
	return nil
}

// Create проверяет и сохраняет новую гостиницу.
func (s *HotelService) Create(ctx context.Context, h model.Hotel) (*model.Hotel, error) {
	if err := normalizeHotel(&h); err != nil {
		return nil, err
	}
	h.IsActive = true
	return s.hotels.Create(ctx, &h)
}

// Update перезаписывает гостиницу.
func (s *HotelService) Update(ctx context.Context, id string, h model.Hotel) (*model.Hotel, error) {
	if err := requireID("hotel id", id); err != nil {
		return nil, err
	}
	if err := normalizeHotel(&h); err != nil {
		return nil, err
	}
	h.ID = id
	return s.hotels.Update(ctx, &h)
}

// Delete удаляет гостиницу.
func (s *HotelService) Delete(ctx context.Context, id string) error {
	if err := requireID("hotel id", id); err != nil {
		return err
	}
	return s.hotels.Delete(ctx, id)
}
