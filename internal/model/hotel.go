package model

import (
	"time"

	"github.com/lib/pq"
)

// Hotel представляет гостиницу, привязанную к месту паломничества.
type Hotel struct {
	ID            string         `db:"id" json:"id"`
	DestinationID string         `db:"destination_id" json:"destination_id"`
	Name          string         `db:"name" json:"name"`
	Category      *string        `db:"category" json:"category"`
	Address       *string        `db:"address" json:"address"`
	RoomTypes     pq.StringArray `db:"room_types" json:"room_types"`
	Facilities    pq.StringArray `db:"facilities" json:"facilities"`
	ImageURL      *string        `db:"image_url" json:"image_url"`
	MapURL        *string        `db:"map_url" json:"map_url"`
	ContactPhone  *string        `db:"contact_phone" json:"contact_phone"`
	ContactEmail  *string        `db:"contact_email" json:"contact_email"`
	IsActive      bool           `db:"is_active" json:"is_active"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`

	// DestinationName заполняется только при выборке списка (JOIN destinations).
	DestinationName *string `db:"destination_name" json:"destination_name,omitempty"`
}

// NamedRef — пара id/имя для выпадающих списков в админке.
type NamedRef struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
