package model

import "time"

// BookingStatus — статус бронирования.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Valid сообщает, входит ли значение в перечисление booking_status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking представляет бронирование пакета паломником.
// Поля пакета, гостиницы и питания копируются в момент бронирования и дальше не пересчитываются.
type Booking struct {
	ID              string        `db:"id" json:"id"`
	UserID          string        `db:"user_id" json:"user_id"`
	PackageID       *string       `db:"package_id" json:"package_id"`
	PackageName     string        `db:"package_name" json:"package_name"`
	Tier            PackageTier   `db:"tier" json:"tier"`
	NumTravelers    int           `db:"num_travelers" json:"num_travelers"`
	TravelDate      Date          `db:"travel_date" json:"travel_date"`
	TotalPrice      float64       `db:"total_price" json:"total_price"`
	TravelDetails   *string       `db:"travel_details" json:"travel_details"`
	HotelDetails    *string       `db:"hotel_details" json:"hotel_details"`
	FoodDetails     *string       `db:"food_details" json:"food_details"`
	ContactName     *string       `db:"contact_name" json:"contact_name"`
	ContactPhone    *string       `db:"contact_phone" json:"contact_phone"`
	ContactEmail    *string       `db:"contact_email" json:"contact_email"`
	SpecialRequests *string       `db:"special_requests" json:"special_requests"`
	Status          BookingStatus `db:"status" json:"status"`
	PaymentStatus   *string       `db:"payment_status" json:"payment_status"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}
