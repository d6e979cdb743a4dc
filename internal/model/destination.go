package model

import (
	"time"

	"github.com/lib/pq"
)

// Destination представляет место паломничества (город, храм, святыня).
type Destination struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Location    *string        `db:"location" json:"location"`
	Description *string        `db:"description" json:"description"`
	ImageURL    *string        `db:"image_url" json:"image_url"`
	Highlights  pq.StringArray `db:"highlights" json:"highlights"`
	IsActive    bool           `db:"is_active" json:"is_active"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}
