package repository

import (
	"context"
	"time"

	"pilgrimage/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const cleanerColumns = `c.id, c.user_id, c.hotel_id, c.full_name, c.phone, c.is_active, c.telegram_chat_id,
	c.created_at, c.updated_at`

// CleanerRepository обеспечивает доступ к данным уборщиков.
type CleanerRepository struct {
	db *sqlx.DB
}

// NewCleanerRepository создает новый репозиторий уборщиков.
func NewCleanerRepository(db *sqlx.DB) *CleanerRepository {
	return &CleanerRepository{db: db}
}

// List возвращает уборщиков с названием закрепленной гостиницы.
func (r *CleanerRepository) List(ctx context.Context) ([]model.Cleaner, error) {
	query := `SELECT ` + cleanerColumns + `, h.name AS hotel_name
	          FROM cleaners c LEFT JOIN hotels h ON h.id = c.hotel_id
	          ORDER BY c.created_at DESC`
	cleaners := []model.Cleaner{}
	if err := r.db.SelectContext(ctx, &cleaners, query); err != nil {
		return nil, wrapErr("ошибка при получении списка уборщиков", err)
	}
	return cleaners, nil
}

// ListNames возвращает id и имена уборщиков.
func (r *CleanerRepository) ListNames(ctx context.Context) ([]model.NamedRef, error) {
	refs := []model.NamedRef{}
	if err := r.db.SelectContext(ctx, &refs, "SELECT id, full_name AS name FROM cleaners ORDER BY full_name"); err != nil {
		return nil, wrapErr("ошибка при получении имен уборщиков", err)
	}
	return refs, nil
}

// GetByUserID ищет запись уборщика для пользователя. Возвращает ErrNotFound, если пользователь не назначен уборщиком.
func (r *CleanerRepository) GetByUserID(ctx context.Context, userID string) (*model.Cleaner, error) {
	var c model.Cleaner
	if err := r.db.GetContext(ctx, &c, "SELECT * FROM cleaners WHERE user_id=$1 LIMIT 1", userID); err != nil {
		return nil, wrapErr("ошибка при поиске уборщика по пользователю", err)
	}
	return &c, nil
}

// GetByTelegramChatID ищет уборщика по привязанному чату Telegram.
func (r *CleanerRepository) GetByTelegramChatID(ctx context.Context, chatID int64) (*model.Cleaner, error) {
	var c model.Cleaner
	if err := r.db.GetContext(ctx, &c, "SELECT * FROM cleaners WHERE telegram_chat_id=$1 LIMIT 1", chatID); err != nil {
		return nil, wrapErr("ошибка при поиске уборщика по чату Telegram", err)
	}
	return &c, nil
}

// Create добавляет уборщика и выдает пользователю роль cleaner в одной транзакции.
func (r *CleanerRepository) Create(ctx context.Context, c *model.Cleaner) (*model.Cleaner, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, wrapErr("не удалось создать уборщика", err)
	}
	defer tx.Rollback()

	var out model.Cleaner
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO cleaners (id, user_id, hotel_id, full_name, phone, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING *`,
		uuid.NewString(), c.UserID, c.HotelID, c.FullName, c.Phone, c.IsActive,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось создать уборщика", err)
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO user_roles (id, user_id, role) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING",
		uuid.NewString(), c.UserID, model.RoleCleaner)
	if err != nil {
		return nil, wrapErr("не удалось выдать роль уборщика", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, wrapErr("не удалось создать уборщика", err)
	}
	return &out, nil
}

// Update перезаписывает имя, телефон, гостиницу и флаг активности.
func (r *CleanerRepository) Update(ctx context.Context, c *model.Cleaner) (*model.Cleaner, error) {
	var out model.Cleaner
	err := r.db.QueryRowxContext(ctx,
		`UPDATE cleaners SET full_name=$1, phone=$2, hotel_id=$3, is_active=$4, updated_at=now()
		 WHERE id=$5 RETURNING *`,
		c.FullName, c.Phone, c.HotelID, c.IsActive, c.ID,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось обновить уборщика", err)
	}
	return &out, nil
}

// SetLinkCode сохраняет одноразовый код привязки Telegram, заменяя предыдущий.
func (r *CleanerRepository) SetLinkCode(ctx context.Context, id, code string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cleaners SET telegram_link_code=$1, telegram_link_expires_at=$2, updated_at=now()
		 WHERE id=$3`, code, expiresAt, id)
	if err != nil {
		return wrapErr("не удалось сохранить код привязки Telegram", err)
	}
	return checkAffected("не удалось сохранить код привязки Telegram", res)
}

// ConsumeLinkCode привязывает чат к уборщику по действующему коду и гасит код.
// Неизвестный, использованный или просроченный код дает ErrNotFound.
func (r *CleanerRepository) ConsumeLinkCode(ctx context.Context, code string, chatID int64, now time.Time) (*model.Cleaner, error) {
	var out model.Cleaner
	err := r.db.QueryRowxContext(ctx,
		`UPDATE cleaners SET telegram_chat_id=$1, telegram_link_code=NULL, telegram_link_expires_at=NULL,
		 updated_at=now()
		 WHERE telegram_link_code=$2 AND telegram_link_expires_at > $3 RETURNING *`,
		chatID, code, now,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось привязать чат Telegram", err)
	}
	return &out, nil
}

// UnlinkTelegram отвязывает чат и сбрасывает невыкупленный код.
func (r *CleanerRepository) UnlinkTelegram(ctx context.Context, id string) (*model.Cleaner, error) {
	var out model.Cleaner
	err := r.db.QueryRowxContext(ctx,
		`UPDATE cleaners SET telegram_chat_id=NULL, telegram_link_code=NULL, telegram_link_expires_at=NULL,
		 updated_at=now()
		 WHERE id=$1 RETURNING *`, id,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось отвязать чат Telegram", err)
	}
	return &out, nil
}

// Delete удаляет уборщика вместе с его заданиями.
func (r *CleanerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cleaners WHERE id=$1", id)
	if err != nil {
		return wrapErr("не удалось удалить уборщика", err)
	}
	return checkAffected("не удалось удалить уборщика", res)
}

// Count возвращает количество уборщиков.
func (r *CleanerRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "cleaners")
}
