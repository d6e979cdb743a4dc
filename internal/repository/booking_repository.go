package repository

import (
	"context"

	"pilgrimage/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// BookingRepository обеспечивает доступ к данным бронирований в базе данных.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository создает новый репозиторий для бронирований.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create сохраняет бронирование вместе со снимком данных пакета.
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	query := `INSERT INTO bookings (id, user_id, package_id, package_name, tier, num_travelers, travel_date,
	          total_price, travel_details, hotel_details, food_details, contact_name, contact_phone,
	          contact_email, special_requests, status, payment_status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING *`
	var out model.Booking
	err := r.db.QueryRowxContext(ctx, query,
		uuid.NewString(), b.UserID, b.PackageID, b.PackageName, b.Tier, b.NumTravelers, b.TravelDate,
		b.TotalPrice, b.TravelDetails, b.HotelDetails, b.FoodDetails, b.ContactName, b.ContactPhone,
		b.ContactEmail, b.SpecialRequests, b.Status, b.PaymentStatus,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось создать бронирование", err)
	}
	return &out, nil
}

// ListByUser возвращает бронирования пользователя, новые первыми.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	bookings := []model.Booking{}
	err := r.db.SelectContext(ctx, &bookings,
		"SELECT * FROM bookings WHERE user_id=$1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, wrapErr("ошибка при получении бронирований пользователя", err)
	}
	return bookings, nil
}

// ListAll возвращает все бронирования, новые первыми.
func (r *BookingRepository) ListAll(ctx context.Context) ([]model.Booking, error) {
	bookings := []model.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, "SELECT * FROM bookings ORDER BY created_at DESC"); err != nil {
		return nil, wrapErr("ошибка при получении списка бронирований", err)
	}
	return bookings, nil
}

// UpdateStatus обновляет статус бронирования.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	var out model.Booking
	err := r.db.QueryRowxContext(ctx,
		"UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING *", status, id,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось обновить статус бронирования", err)
	}
	return &out, nil
}

// Count возвращает количество бронирований.
func (r *BookingRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "bookings")
}
