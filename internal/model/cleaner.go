package model

import "time"

// Cleaner представляет сотрудника уборки, закрепленного за гостиницей.
type Cleaner struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	HotelID        *string   `db:"hotel_id" json:"hotel_id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Phone          *string   `db:"phone" json:"phone"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	TelegramChatID *int64    `db:"telegram_chat_id" json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`

	// Код привязки Telegram наружу не отдается.
	TelegramLinkCode      *string    `db:"telegram_link_code" json:"-"`
	TelegramLinkExpiresAt *time.Time `db:"telegram_link_expires_at" json:"-"`

	HotelName *string `db:"hotel_name" json:"hotel_name,omitempty"`
}
