package model

import "time"

// CleaningStatus — статус задания на уборку.
type CleaningStatus string

const (
	CleaningPending    CleaningStatus = "pending"
	CleaningInProgress CleaningStatus = "in_progress"
	CleaningCompleted  CleaningStatus = "completed"
)

// Valid сообщает, входит ли значение в перечисление cleaning_status.
func (s CleaningStatus) Valid() bool {
	switch s {
	case CleaningPending, CleaningInProgress, CleaningCompleted:
		return true
	}
	return false
}

// Next возвращает единственный допустимый следующий статус для уборщика.
// Для завершенного задания возвращает false.
func (s CleaningStatus) Next() (CleaningStatus, bool) {
	switch s {
	case CleaningPending:
		return CleaningInProgress, true
	case CleaningInProgress:
		return CleaningCompleted, true
	}
	return "", false
}

// CleaningSchedule представляет одно задание на уборку в гостинице на дату.
type CleaningSchedule struct {
	ID            string         `db:"id" json:"id"`
	CleanerID     string         `db:"cleaner_id" json:"cleaner_id"`
	HotelID       string         `db:"hotel_id" json:"hotel_id"`
	ScheduledDate Date           `db:"scheduled_date" json:"scheduled_date"`
	Status        CleaningStatus `db:"status" json:"status"`
	Notes         *string        `db:"notes" json:"notes"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`

	CleanerName *string `db:"cleaner_name" json:"cleaner_name,omitempty"`
	HotelName   *string `db:"hotel_name" json:"hotel_name,omitempty"`
}
