package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pilgrimage/internal/metrics"
	"pilgrimage/internal/model"
)

const (
	// MaxTravelers — верхняя граница числа путешественников в одной заявке.
	MaxTravelers = 20
	notAvailable = "N/A"
)

// BookingForm — данные формы бронирования.
type BookingForm struct {
	ContactName     string `json:"contact_name"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone"`
	TravelDate      string `json:"travel_date"`
	NumTravelers    int    `json:"num_travelers"`
	SpecialRequests string `json:"special_requests"`
}

// BookingService содержит бизнес-логику, связанную с бронированиями.
type BookingService struct {
	bookings BookingStore
	catalog  *CatalogService
	log      *slog.Logger
}

// NewBookingService создает новый сервис бронирований.
func NewBookingService(bookings BookingStore, catalog *CatalogService, log *slog.Logger) *BookingService {
	return &BookingService{bookings: bookings, catalog: catalog, log: log}
}

func (f *BookingForm) validate() (model.Date, error) {
	f.ContactName = strings.TrimSpace(f.ContactName)
	f.ContactEmail = strings.TrimSpace(f.ContactEmail)
	f.ContactPhone = strings.TrimSpace(f.ContactPhone)
	switch {
	case f.ContactName == "":
		return model.Date{}, invalid("contact name is required")
	case f.ContactEmail == "" || !strings.Contains(f.ContactEmail, "@"):
		return model.Date{}, invalid("a valid contact email is required")
	case f.ContactPhone == "":
		return model.Date{}, invalid("contact phone is required")
	case f.TravelDate == "":
		return model.Date{}, invalid("travel date is required")
	}
	if f.NumTravelers == 0 {
		f.NumTravelers = 1
	}
	if f.NumTravelers < 1 || f.NumTravelers > MaxTravelers {
		return model.Date{}, invalid("number of travelers must be between 1 and %d", MaxTravelers)
	}
	date, err := model.ParseDate(f.TravelDate)
	if err != nil {
		return model.Date{}, invalid("%v", err)
	}
	return date, nil
}

// CreateBooking создает бронирование пакета для пользователя.
// Название, класс, цена и описания гостиницы/питания копируются из текущего состояния пакета.
func (s *BookingService) CreateBooking(ctx context.Context, userID, packageID string, form BookingForm) (*model.Booking, error) {
	travelDate, err := form.validate()
	if err != nil {
		return nil, err
	}
	details, err := s.catalog.PackageDetails(ctx, packageID)
	if err != nil {
		return nil, err
	}
	booking := Snapshot(details, form.NumTravelers)
	booking.UserID = userID
	booking.TravelDate = travelDate
	booking.ContactName = &form.ContactName
	booking.ContactEmail = &form.ContactEmail
	booking.ContactPhone = &form.ContactPhone
	booking.SpecialRequests = emptyToNil(&form.SpecialRequests)

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return nil, err
	}
	metrics.IncBookingCreated(string(created.Tier))
	s.log.Info("booking created", "booking_id", created.ID, "package_id", packageID, "travelers", created.NumTravelers)
	return created, nil
}

// Snapshot строит неизменяемую копию данных пакета для бронирования.
func Snapshot(d *PackageDetails, travelers int) *model.Booking {
	pkg := d.Package
	travelType := deref(pkg.TravelType)
	if travelType == "" {
		travelType = notAvailable
	}
	travel := fmt.Sprintf("%s - %d days", travelType, pkg.DurationDays)

	hotel := notAvailable
	if d.Hotel != nil {
		hotel = d.Hotel.Name
		if c := deref(d.Hotel.Category); c != "" {
			hotel = fmt.Sprintf("%s (%s)", d.Hotel.Name, c)
		}
	}
	food := notAvailable
	if d.FoodPlan != nil {
		food = fmt.Sprintf("%s - %d meals/day", d.FoodPlan.Name, d.FoodPlan.MealsPerDay)
	}

	id := pkg.ID
	return &model.Booking{
		PackageID:     &id,
		PackageName:   pkg.Name,
		Tier:          pkg.Tier,
		NumTravelers:  travelers,
		TotalPrice:    pkg.TotalPrice * float64(travelers),
		TravelDetails: &travel,
		HotelDetails:  &hotel,
		FoodDetails:   &food,
		Status:        model.BookingPending,
	}
}

// ListForUser возвращает историю бронирований пользователя.
func (s *BookingService) ListForUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// ListAll возвращает все бронирования, отфильтрованные по подстроке в названии пакета или имени контакта.
func (s *BookingService) ListAll(ctx context.Context, search string) ([]model.Booking, error) {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterBookings(bookings, search), nil
}

// FilterBookings выполняет поиск без учета регистра по package_name и contact_name.
func FilterBookings(bookings []model.Booking, search string) []model.Booking {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return bookings
	}
	out := []model.Booking{}
	for _, b := range bookings {
		if strings.Contains(strings.ToLower(b.PackageName), q) ||
			strings.Contains(strings.ToLower(deref(b.ContactName)), q) {
			out = append(out, b)
		}
	}
	return out
}

// UpdateStatus устанавливает любой допустимый статус бронирования (админка).
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	if err := requireID("booking id", id); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, invalid("unknown booking status %q", status)
	}
	updated, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	metrics.IncBookingStatusChanged(string(status))
	return updated, nil
}
