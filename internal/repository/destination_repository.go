package repository

import (
	"context"

	"pilgrimage/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DestinationRepository обеспечивает доступ к данным мест паломничества.
type DestinationRepository struct {
	db *sqlx.DB
}

// NewDestinationRepository создает новый репозиторий мест паломничества.
func NewDestinationRepository(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

// List возвращает места паломничества, новые первыми. При activeOnly — только активные.
func (r *DestinationRepository) List(ctx context.Context, activeOnly bool) ([]model.Destination, error) {
	query := "SELECT * FROM destinations"
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY created_at DESC"
	destinations := []model.Destination{}
	if err := r.db.SelectContext(ctx, &destinations, query); err != nil {
		return nil, wrapErr("ошибка при получении списка мест паломничества", err)
	}
	return destinations, nil
}

// ListNames возвращает id и названия для выпадающих списков.
func (r *DestinationRepository) ListNames(ctx context.Context) ([]model.NamedRef, error) {
	refs := []model.NamedRef{}
	if err := r.db.SelectContext(ctx, &refs, "SELECT id, name FROM destinations ORDER BY name"); err != nil {
		return nil, wrapErr("ошибка при получении названий мест паломничества", err)
	}
	return refs, nil
}

// GetByID получает место паломничества по идентификатору.
func (r *DestinationRepository) GetByID(ctx context.Context, id string) (*model.Destination, error) {
	var d model.Destination
	if err := r.db.GetContext(ctx, &d, "SELECT * FROM destinations WHERE id=$1", id); err != nil {
		return nil, wrapErr("ошибка при получении места паломничества", err)
	}
	return &d, nil
}

// Create добавляет место паломничества и возвращает сохраненную запись.
func (r *DestinationRepository) Create(ctx context.Context, d *model.Destination) (*model.Destination, error) {
	query := `INSERT INTO destinations (id, name, location, description, image_url, highlights, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING *`
	var out model.Destination
	err := r.db.QueryRowxContext(ctx, query,
		uuid.NewString(), d.Name, d.Location, d.Description, d.ImageURL, d.Highlights, d.IsActive,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось создать место паломничества", err)
	}
	return &out, nil
}

// Update перезаписывает редактируемые поля места паломничества.
func (r *DestinationRepository) Update(ctx context.Context, d *model.Destination) (*model.Destination, error) {
	query := `UPDATE destinations SET name=$1, location=$2, description=$3, image_url=$4, highlights=$5,
	          is_active=$6, updated_at=now() WHERE id=$7 RETURNING *`
	var out model.Destination
	err := r.db.QueryRowxContext(ctx, query,
		d.Name, d.Location, d.Description, d.ImageURL, d.Highlights, d.IsActive, d.ID,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось обновить место паломничества", err)
	}
	return &out, nil
}

// Delete удаляет место паломничества. Поведение при наличии ссылок определяет схема БД.
func (r *DestinationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM destinations WHERE id=$1", id)
	if err != nil {
		return wrapErr("не удалось удалить место паломничества", err)
	}
	return checkAffected("не удалось удалить место паломничества", res)
}

// Count возвращает количество мест паломничества.
func (r *DestinationRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "destinations")
}
