package service

import (
	"context"
	"time"

	"pilgrimage/internal/model"
	"pilgrimage/internal/repository"
)

// DestinationStore — места паломничества.
type DestinationStore interface {
	List(ctx context.Context, activeOnly bool) ([]model.Destination, error)
	ListNames(ctx context.Context) ([]model.NamedRef, error)
	GetByID(ctx context.Context, id string) (*model.Destination, error)
	Create(ctx context.Context, d *model.Destination) (*model.Destination, error)
	Update(ctx context.Context, d *model.Destination) (*model.Destination, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// HotelStore — гостиницы.
type HotelStore interface {
	List(ctx context.Context) ([]model.Hotel, error)
	ListNames(ctx context.Context) ([]model.NamedRef, error)
	GetByID(ctx context.Context, id string) (*model.Hotel, error)
	Create(ctx context.Context, h *model.Hotel) (*model.Hotel, error)
	Update(ctx context.Context, h *model.Hotel) (*model.Hotel, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// FoodPlanStore — планы питания.
type FoodPlanStore interface {
	List(ctx context.Context) ([]model.FoodPlan, error)
	ListNames(ctx context.Context) ([]model.NamedRef, error)
	GetByID(ctx context.Context, id string) (*model.FoodPlan, error)
	Create(ctx context.Context, f *model.FoodPlan) (*model.FoodPlan, error)
	Update(ctx context.Context, f *model.FoodPlan) (*model.FoodPlan, error)
	Delete(ctx context.Context, id string) error
}

// PackageStore — туристические пакеты.
type PackageStore interface {
	ListActive(ctx context.Context) ([]model.TravelPackage, error)
	ListAll(ctx context.Context) ([]model.TravelPackage, error)
	GetByID(ctx context.Context, id string) (*model.TravelPackage, error)
	Create(ctx context.Context, p *model.TravelPackage) (*model.TravelPackage, error)
	Update(ctx context.Context, p *model.TravelPackage) (*model.TravelPackage, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// BookingStore — бронирования.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error)
	Count(ctx context.Context) (int, error)
}

// CleanerStore — уборщики и привязка Telegram.
type CleanerStore interface {
	List(ctx context.Context) ([]model.Cleaner, error)
	ListNames(ctx context.Context) ([]model.NamedRef, error)
	GetByUserID(ctx context.Context, userID string) (*model.Cleaner, error)
	GetByTelegramChatID(ctx context.Context, chatID int64) (*model.Cleaner, error)
	Create(ctx context.Context, c *model.Cleaner) (*model.Cleaner, error)
	Update(ctx context.Context, c *model.Cleaner) (*model.Cleaner, error)
	SetLinkCode(ctx context.Context, id, code string, expiresAt time.Time) error
	ConsumeLinkCode(ctx context.Context, code string, chatID int64, now time.Time) (*model.Cleaner, error)
	UnlinkTelegram(ctx context.Context, id string) (*model.Cleaner, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ScheduleStore — задания на уборку.
type ScheduleStore interface {
	List(ctx context.Context) ([]model.CleaningSchedule, error)
	ListByCleaner(ctx context.Context, cleanerID string) ([]model.CleaningSchedule, error)
	GetByID(ctx context.Context, id string) (*model.CleaningSchedule, error)
	Create(ctx context.Context, s *model.CleaningSchedule) (*model.CleaningSchedule, error)
	Update(ctx context.Context, s *model.CleaningSchedule) (*model.CleaningSchedule, error)
	UpdateStatus(ctx context.Context, id string, from, to model.CleaningStatus) (*model.CleaningSchedule, error)
	Delete(ctx context.Context, id string) error
}

// ProfileStore — профили и роли пользователей.
type ProfileStore interface {
	List(ctx context.Context) ([]model.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Count(ctx context.Context) (int, error)
	RolesFor(ctx context.Context, userID string) ([]model.Role, error)
	GrantRole(ctx context.Context, userID string, role model.Role) error
}

var (
	_ DestinationStore = (*repository.DestinationRepository)(nil)
	_ HotelStore       = (*repository.HotelRepository)(nil)
	_ FoodPlanStore    = (*repository.FoodPlanRepository)(nil)
	_ PackageStore     = (*repository.PackageRepository)(nil)
	_ BookingStore     = (*repository.BookingRepository)(nil)
	_ CleanerStore     = (*repository.CleanerRepository)(nil)
	_ ScheduleStore    = (*repository.ScheduleRepository)(nil)
	_ ProfileStore     = (*repository.ProfileRepository)(nil)
)
