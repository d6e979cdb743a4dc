package service

import (
	"context"

	"pilgrimage/internal/model"
)

// DashboardStats — счетчики главной страницы админки.
type DashboardStats struct {
	Destinations int `json:"destinations"`
	Hotels       int `json:"hotels"`
	Packages     int `json:"packages"`
	Bookings     int `json:"bookings"`
	Pilgrims     int `json:"pilgrims"`
	Cleaners     int `json:"cleaners"`
}

// FormOptions — списки для выпадающих полей форм админки.
type FormOptions struct {
	Destinations []model.NamedRef `json:"destinations"`
	Hotels       []model.NamedRef `json:"hotels"`
	FoodPlans    []model.NamedRef `json:"food_plans"`
	Cleaners     []model.NamedRef `json:"cleaners"`
}

// DashboardService — сводка для главной страницы админки.
type DashboardService struct {
	destinations DestinationStore
	hotels       HotelStore
	foodPlans    FoodPlanStore
	packages     PackageStore
	bookings     BookingStore
	profiles     ProfileStore
	cleaners     CleanerStore
}

// NewDashboardService создает сервис сводки.
func NewDashboardService(destinations DestinationStore, hotels HotelStore, foodPlans FoodPlanStore, packages PackageStore,
	bookings BookingStore, profiles ProfileStore, cleaners CleanerStore) *DashboardService {
	return &DashboardService{
		destinations: destinations,
		hotels:       hotels,
		foodPlans:    foodPlans,
		packages:     packages,
		bookings:     bookings,
		profiles:     profiles,
		cleaners:     cleaners,
	}
}

// Stats считает строки в основных таблицах. Первая ошибка прерывает подсчет.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	counters := []struct {
		dst   *int
		count func(context.Context) (int, error)
	}{
		{&stats.Destinations, s.destinations.Count},
		{&stats.Hotels, s.hotels.Count},
		{&stats.Packages, s.packages.Count},
		{&stats.Bookings, s.bookings.Count},
		{&stats.Pilgrims, s.profiles.Count},
		{&stats.Cleaners, s.cleaners.Count},
	}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return &stats, nil
}

// Options возвращает пары id/название для форм гостиниц, пакетов, уборщиков и расписаний.
func (s *DashboardService) Options(ctx context.Context) (*FormOptions, error) {
	var (
		opts FormOptions
		err  error
	)
	if opts.Destinations, err = s.destinations.ListNames(ctx); err != nil {
		return nil, err
	}
	if opts.Hotels, err = s.hotels.ListNames(ctx); err != nil {
		return nil, err
	}
	if opts.FoodPlans, err = s.foodPlans.ListNames(ctx); err != nil {
		return nil, err
	}
	if opts.Cleaners, err = s.cleaners.ListNames(ctx); err != nil {
		return nil, err
	}
	return &opts, nil
}
