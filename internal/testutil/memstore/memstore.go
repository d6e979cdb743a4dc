// Package memstore содержит хранилища в памяти для тестов сервисов, обработчиков и бота.
// Поведение повторяет репозитории Postgres; эталон SQL-семантики — тесты internal/repository на sqlmock.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pilgrimage/internal/model"
	"pilgrimage/internal/repository"
)

func notFound(action string) error {
	return fmt.Errorf("%s: %w", action, repository.ErrNotFound)
}

// Store объединяет все таблицы, чтобы проверять внешние ключи при удалении.
type Store struct {
	mu           sync.Mutex
	destinations []model.Destination
	hotels       []model.Hotel
	foodPlans    []model.FoodPlan
	packages     []model.TravelPackage
	bookings     []model.Booking
	cleaners     []model.Cleaner
	schedules    []model.CleaningSchedule
	profiles     []model.Profile
	roles        map[string][]model.Role

	// Err, если задан, возвращается всеми операциями.
	Err error
}

// New создает пустое хранилище.
func New() *Store {
	return &Store{roles: map[string][]model.Role{}}
}

// Доступ к таблицам хранилища.
func (s *Store) Destinations() *Destinations { return &Destinations{s} }
func (s *Store) Hotels() *Hotels             { return &Hotels{s} }
func (s *Store) FoodPlans() *FoodPlans       { return &FoodPlans{s} }
func (s *Store) Packages() *Packages         { return &Packages{s} }
func (s *Store) Bookings() *Bookings         { return &Bookings{s} }
func (s *Store) Cleaners() *Cleaners         { return &Cleaners{s} }
func (s *Store) Schedules() *Schedules       { return &Schedules{s} }
func (s *Store) Profiles() *Profiles         { return &Profiles{s} }

func stamp(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func index[T any](items []T, id string, idOf func(T) string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}

func names[T any](items []T, ref func(T) model.NamedRef) []model.NamedRef {
	out := make([]model.NamedRef, 0, len(items))
	for _, it := range items {
		out = append(out, ref(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// newestFirst возвращает копию в порядке, в котором элементы добавлялись последними.
func newestFirst[T any](items []T) []T {
	out := make([]T, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		out = append(out, items[i])
	}
	return out
}

// Destinations

// Destinations — места паломничества.
type Destinations struct{ s *Store }

func destID(d model.Destination) string { return d.ID }

func (r *Destinations) List(_ context.Context, activeOnly bool) ([]model.Destination, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []model.Destination{}
	for _, d := range newestFirst(r.s.destinations) {
		if !activeOnly || d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *Destinations) ListNames(_ context.Context) ([]model.NamedRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return names(r.s.destinations, func(d model.Destination) model.NamedRef { return model.NamedRef{ID: d.ID, Name: d.Name} }), r.s.Err
}

func (r *Destinations) GetByID(_ context.Context, id string) (*model.Destination, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.destinations, id, destID)
	if i < 0 {
		return nil, notFound("ошибка при получении места паломничества")
	}
	d := r.s.destinations[i]
	return &d, nil
}

func (r *Destinations) Create(_ context.Context, d *model.Destination) (*model.Destination, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := *d
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.destinations = append(r.s.destinations, out)
	return &out, nil
}

func (r *Destinations) Update(_ context.Context, d *model.Destination) (*model.Destination, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.destinations, d.ID, destID)
	if i < 0 {
		return nil, notFound("не удалось обновить место паломничества")
	}
	out := *d
	out.CreatedAt = r.s.destinations[i].CreatedAt
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.destinations[i] = out
	return &out, nil
}

// Delete ведет себя как ограничение ON DELETE RESTRICT для hotels.destination_id.
func (r *Destinations) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.destinations, id, destID)
	if i < 0 {
		return notFound("не удалось удалить место паломничества")
	}
	for _, h := range r.s.hotels {
		if h.DestinationID == id {
			return fmt.Errorf("delete destination: %w: update or delete on table \"destinations\" violates foreign key constraint \"hotels_destination_id_fkey\" on table \"hotels\"", repository.ErrConflict)
		}
	}
	r.s.destinations = append(r.s.destinations[:i], r.s.destinations[i+1:]...)
	return nil
}

func (r *Destinations) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.destinations), r.s.Err
}

// Hotels

// Hotels — гостиницы.
type Hotels struct{ s *Store }

func hotelID(h model.Hotel) string { return h.ID }

func (r *Hotels) List(_ context.Context) ([]model.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return newestFirst(r.s.hotels), nil
}

func (r *Hotels) ListNames(_ context.Context) ([]model.NamedRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return names(r.s.hotels, func(h model.Hotel) model.NamedRef { return model.NamedRef{ID: h.ID, Name: h.Name} }), r.s.Err
}

func (r *Hotels) GetByID(_ context.Context, id string) (*model.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.hotels, id, hotelID)
	if i < 0 {
		return nil, notFound("ошибка при получении гостиницы")
	}
	h := r.s.hotels[i]
	return &h, nil
}

func (r *Hotels) Create(_ context.Context, h *model.Hotel) (*model.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := *h
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.hotels = append(r.s.hotels, out)
	return &out, nil
}

func (r *Hotels) Update(_ context.Context, h *model.Hotel) (*model.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.hotels, h.ID, hotelID)
	if i < 0 {
		return nil, notFound("не удалось обновить гостиницу")
	}
	out := *h
	out.CreatedAt = r.s.hotels[i].CreatedAt
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.hotels[i] = out
	return &out, nil
}

func (r *Hotels) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.hotels, id, hotelID)
	if i < 0 {
		return notFound("не удалось удалить гостиницу")
	}
	r.s.hotels = append(r.s.hotels[:i], r.s.hotels[i+1:]...)
	return nil
}

func (r *Hotels) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.hotels), r.s.Err
}

// FoodPlans

// FoodPlans — планы питания.
type FoodPlans struct{ s *Store }

func foodPlanID(f model.FoodPlan) string { return f.ID }

func (r *FoodPlans) List(_ context.Context) ([]model.FoodPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return newestFirst(r.s.foodPlans), nil
}

func (r *FoodPlans) ListNames(_ context.Context) ([]model.NamedRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return names(r.s.foodPlans, func(f model.FoodPlan) model.NamedRef { return model.NamedRef{ID: f.ID, Name: f.Name} }), r.s.Err
}

func (r *FoodPlans) GetByID(_ context.Context, id string) (*model.FoodPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.foodPlans, id, foodPlanID)
	if i < 0 {
		return nil, notFound("ошибка при получении плана питания")
	}
	f := r.s.foodPlans[i]
	return &f, nil
}

func (r *FoodPlans) Create(_ context.Context, f *model.FoodPlan) (*model.FoodPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := *f
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.foodPlans = append(r.s.foodPlans, out)
	return &out, nil
}

func (r *FoodPlans) Update(_ context.Context, f *model.FoodPlan) (*model.FoodPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.foodPlans, f.ID, foodPlanID)
	if i < 0 {
		return nil, notFound("не удалось обновить план питания")
	}
	out := *f
	out.CreatedAt = r.s.foodPlans[i].CreatedAt
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.foodPlans[i] = out
	return &out, nil
}

func (r *FoodPlans) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.foodPlans, id, foodPlanID)
	if i < 0 {
		return notFound("не удалось удалить план питания")
	}
	r.s.foodPlans = append(r.s.foodPlans[:i], r.s.foodPlans[i+1:]...)
	return nil
}

// Packages

// Packages — туристические пакеты.
type Packages struct{ s *Store }

func packageID(p model.TravelPackage) string { return p.ID }

func (r *Packages) ListActive(_ context.Context) ([]model.TravelPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []model.TravelPackage{}
	for _, p := range newestFirst(r.s.packages) {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsFeatured && !out[j].IsFeatured })
	return out, nil
}

func (r *Packages) ListAll(_ context.Context) ([]model.TravelPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return newestFirst(r.s.packages), nil
}

func (r *Packages) GetByID(_ context.Context, id string) (*model.TravelPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	i := index(r.s.packages, id, packageID)
	if i < 0 {
		return nil, notFound("ошибка при получении пакета")
	}
	p := r.s.packages[i]
	return &p, nil
}

func (r *Packages) Create(_ context.Context, p *model.TravelPackage) (*model.TravelPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := *p
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.packages = append(r.s.packages, out)
	return &out, nil
}

func (r *Packages) Update(_ context.Context, p *model.TravelPackage) (*model.TravelPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.packages, p.ID, packageID)
	if i < 0 {
		return nil, notFound("не удалось обновить пакет")
	}
	out := *p
	out.CreatedAt = r.s.packages[i].CreatedAt
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.packages[i] = out
	return &out, nil
}

func (r *Packages) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.packages, id, packageID)
	if i < 0 {
		return notFound("не удалось удалить пакет")
	}
	r.s.packages = append(r.s.packages[:i], r.s.packages[i+1:]...)
	return nil
}

func (r *Packages) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.packages), r.s.Err
}

// Bookings

// Bookings — бронирования.
type Bookings struct{ s *Store }

func bookingID(b model.Booking) string { return b.ID }

func (r *Bookings) Create(_ context.Context, b *model.Booking) (*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := *b
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.bookings = append(r.s.bookings, out)
	return &out, nil
}

func (r *Bookings) ListByUser(_ context.Context, userID string) ([]model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []model.Booking{}
	for _, b := range newestFirst(r.s.bookings) {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *Bookings) ListAll(_ context.Context) ([]model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return newestFirst(r.s.bookings), nil
}

func (r *Bookings) UpdateStatus(_ context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.bookings, id, bookingID)
	if i < 0 {
		return nil, notFound("не удалось обновить статус бронирования")
	}
	r.s.bookings[i].Status = status
	r.s.bookings[i].UpdatedAt = time.Now().UTC()
	b := r.s.bookings[i]
	return &b, nil
}

func (r *Bookings) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.bookings), r.s.Err
}

// Cleaners

// Cleaners — уборщики.
type Cleaners struct{ s *Store }

func cleanerID(c model.Cleaner) string { return c.ID }

func (r *Cleaners) List(_ context.Context) ([]model.Cleaner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return newestFirst(r.s.cleaners), nil
}

func (r *Cleaners) ListNames(_ context.Context) ([]model.NamedRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return names(r.s.cleaners, func(c model.Cleaner) model.NamedRef { return model.NamedRef{ID: c.ID, Name: c.FullName} }), r.s.Err
}

func (r *Cleaners) GetByUserID(_ context.Context, userID string) (*model.Cleaner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	i := index(r.s.cleaners, userID, func(c model.Cleaner) string { return c.UserID })
	if i < 0 {
		return nil, notFound("ошибка при поиске уборщика по пользователю")
	}
	c := r.s.cleaners[i]
	return &c, nil
}

func (r *Cleaners) GetByTelegramChatID(_ context.Context, chatID int64) (*model.Cleaner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.cleaners {
		if c.TelegramChatID != nil && *c.TelegramChatID == chatID {
			return &c, nil
		}
	}
	return nil, notFound("ошибка при поиске уборщика по чату Telegram")
}

// Create добавляет уборщика и выдает пользователю роль cleaner.
func (r *Cleaners) Create(_ context.Context, c *model.Cleaner) (*model.Cleaner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if index(r.s.cleaners, c.UserID, func(c model.Cleaner) string { return c.UserID }) >= 0 {
		return nil, fmt.Errorf("не удалось создать уборщика: %w: duplicate key value violates unique constraint \"cleaners_user_id_key\"", repository.ErrConflict)
	}
	out := *c
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.cleaners = append(r.s.cleaners, out)
	r.s.grant(out.UserID, model.RoleCleaner)
	return &out, nil
}

func (r *Cleaners) Update(_ context.Context, c *model.Cleaner) (*model.Cleaner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.cleaners, c.ID, cleanerID)
	if i < 0 {
		return nil, notFound("не удалось обновить уборщика")
	}
	cur := &r.s.cleaners[i]
	cur.FullName = c.FullName
	cur.Phone = c.Phone
	cur.HotelID = c.HotelID
	cur.IsActive = c.IsActive
	cur.UpdatedAt = time.Now().UTC()
	out := *cur
	return &out, nil
}

// SetLinkCode сохраняет код привязки Telegram.
func (r *Cleaners) SetLinkCode(_ context.Context, id, code string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	i := index(r.s.cleaners, id, cleanerID)
	if i < 0 {
		return notFound("не удалось сохранить код привязки Telegram")
	}
	r.s.cleaners[i].TelegramLinkCode = &code
	r.s.cleaners[i].TelegramLinkExpiresAt = &expiresAt
	return nil
}

// ConsumeLinkCode повторяет UPDATE ... WHERE telegram_link_code=$2 AND telegram_link_expires_at > $3
// и уникальность telegram_chat_id.
func (r *Cleaners) ConsumeLinkCode(_ context.Context, code string, chatID int64, now time.Time) (*model.Cleaner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	i := index(r.s.cleaners, code, func(c model.Cleaner) string {
		if c.TelegramLinkCode == nil {
			return ""
		}
		return *c.TelegramLinkCode
	})
	if i < 0 || !r.s.cleaners[i].TelegramLinkExpiresAt.After(now) {
		return nil, notFound("не удалось привязать чат Telegram")
	}
	for j, other := range r.s.cleaners {
		if j != i && other.TelegramChatID != nil && *other.TelegramChatID == chatID {
			return nil, fmt.Errorf("не удалось привязать чат Telegram: %w: duplicate key value violates unique constraint \"cleaners_telegram_chat_id_key\"", repository.ErrConflict)
		}
	}
	cur := &r.s.cleaners[i]
	cur.TelegramChatID = &chatID
	cur.TelegramLinkCode = nil
	cur.TelegramLinkExpiresAt = nil
	cur.UpdatedAt = time.Now().UTC()
	out := *cur
	return &out, nil
}

// UnlinkTelegram сбрасывает чат и код привязки.
func (r *Cleaners) UnlinkTelegram(_ context.Context, id string) (*model.Cleaner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	i := index(r.s.cleaners, id, cleanerID)
	if i < 0 {
		return nil, notFound("не удалось отвязать чат Telegram")
	}
	cur := &r.s.cleaners[i]
	cur.TelegramChatID = nil
	cur.TelegramLinkCode = nil
	cur.TelegramLinkExpiresAt = nil
	cur.UpdatedAt = time.Now().UTC()
	out := *cur
	return &out, nil
}

func (r *Cleaners) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.cleaners, id, cleanerID)
	if i < 0 {
		return notFound("не удалось удалить уборщика")
	}
	r.s.cleaners = append(r.s.cleaners[:i], r.s.cleaners[i+1:]...)
	return nil
}

func (r *Cleaners) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.cleaners), r.s.Err
}

// Schedules

// Schedules — задания на уборку.
type Schedules struct{ s *Store }

func scheduleID(sc model.CleaningSchedule) string { return sc.ID }

func (r *Schedules) List(_ context.Context) ([]model.CleaningSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := append([]model.CleaningSchedule{}, r.s.schedules...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledDate.After(out[j].ScheduledDate.Time) })
	return out, nil
}

func (r *Schedules) ListByCleaner(_ context.Context, cleanerID string) ([]model.CleaningSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []model.CleaningSchedule{}
	for _, sc := range r.s.schedules {
		if sc.CleanerID == cleanerID {
			sc.HotelName = r.s.hotelName(sc.HotelID)
			out = append(out, sc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate.Time) })
	return out, nil
}

func (r *Schedules) GetByID(_ context.Context, id string) (*model.CleaningSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.schedules, id, scheduleID)
	if i < 0 {
		return nil, notFound("ошибка при получении задания на уборку")
	}
	sc := r.s.schedules[i]
	return &sc, nil
}

func (r *Schedules) Create(_ context.Context, sc *model.CleaningSchedule) (*model.CleaningSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := *sc
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.schedules = append(r.s.schedules, out)
	return &out, nil
}

func (r *Schedules) Update(_ context.Context, sc *model.CleaningSchedule) (*model.CleaningSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.schedules, sc.ID, scheduleID)
	if i < 0 {
		return nil, notFound("не удалось обновить задание на уборку")
	}
	out := *sc
	out.CreatedAt = r.s.schedules[i].CreatedAt
	stamp(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	r.s.schedules[i] = out
	return &out, nil
}

// UpdateStatus меняет статус только если текущий равен from, как UPDATE ... WHERE status=from.
func (r *Schedules) UpdateStatus(_ context.Context, id string, from, to model.CleaningStatus) (*model.CleaningSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.schedules, id, scheduleID)
	if i < 0 || r.s.schedules[i].Status != from {
		return nil, notFound("не удалось обновить статус задания на уборку")
	}
	r.s.schedules[i].Status = to
	r.s.schedules[i].UpdatedAt = time.Now().UTC()
	sc := r.s.schedules[i]
	sc.HotelName = r.s.hotelName(sc.HotelID)
	return &sc, nil
}

func (r *Schedules) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.schedules, id, scheduleID)
	if i < 0 {
		return notFound("не удалось удалить задание на уборку")
	}
	r.s.schedules = append(r.s.schedules[:i], r.s.schedules[i+1:]...)
	return nil
}

// Profiles

// Profiles — профили и роли.
type Profiles struct{ s *Store }

// Add регистрирует профиль, как это делает внешний сервис аутентификации.
func (r *Profiles) Add(p model.Profile) model.Profile {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	r.s.profiles = append(r.s.profiles, p)
	return p
}

func (r *Profiles) List(_ context.Context) ([]model.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return newestFirst(r.s.profiles), nil
}

func (r *Profiles) GetByUserID(_ context.Context, userID string) (*model.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := index(r.s.profiles, userID, func(p model.Profile) string { return p.UserID })
	if i < 0 {
		return nil, notFound("ошибка при получении профиля")
	}
	p := r.s.profiles[i]
	return &p, nil
}

func (r *Profiles) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.profiles), r.s.Err
}

func (r *Profiles) RolesFor(_ context.Context, userID string) ([]model.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return append([]model.Role{}, r.s.roles[userID]...), nil
}

func (r *Profiles) GrantRole(_ context.Context, userID string, role model.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.grant(userID, role)
	return nil
}

// hotelName повторяет подзапрос/LEFT JOIN по hotels: nil, если гостиницы нет.
func (s *Store) hotelName(id string) *string {
	i := index(s.hotels, id, hotelID)
	if i < 0 {
		return nil
	}
	name := s.hotels[i].Name
	return &name
}

func (s *Store) grant(userID string, role model.Role) {
	for _, have := range s.roles[userID] {
		if have == role {
			return
		}
	}
	s.roles[userID] = append(s.roles[userID], role)
}
