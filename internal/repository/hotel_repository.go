package repository

import (
	"context"

	"pilgrimage/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const hotelColumns = `h.id, h.destination_id, h.name, h.category, h.address, h.room_types, h.facilities,
	h.image_url, h.map_url, h.contact_phone, h.contact_email, h.is_active, h.created_at, h.updated_at`

// HotelRepository обеспечивает доступ к данным гостиниц.
type HotelRepository struct {
	db *sqlx.DB
}

// NewHotelRepository создает новый репозиторий гостиниц.
func NewHotelRepository(db *sqlx.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// List возвращает гостиницы с названием места паломничества, новые первыми.
func (r *HotelRepository) List(ctx context.Context) ([]model.Hotel, error) {
	query := `SELECT ` + hotelColumns + `, d.name AS destination_name
	          FROM hotels h LEFT JOIN destinations d ON d.id = h.destination_id
	          ORDER BY h.created_at DESC`
	hotels := []model.Hotel{}
	if err := r.db.SelectContext(ctx, &hotels, query); err != nil {
		return nil, wrapErr("ошибка при получении списка гостиниц", err)
	}
	return hotels, nil
}

// ListNames возвращает id и названия гостиниц.
func (r *HotelRepository) ListNames(ctx context.Context) ([]model.NamedRef, error) {
	refs := []model.NamedRef{}
	if err := r.db.SelectContext(ctx, &refs, "SELECT id, name FROM hotels ORDER BY name"); err != nil {
		return nil, wrapErr("ошибка при получении названий гостиниц", err)
	}
	return refs, nil
}

// GetByID получает гостиницу по идентификатору.
func (r *HotelRepository) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	var h model.Hotel
	if err := r.db.GetContext(ctx, &h, "SELECT * FROM hotels WHERE id=$1", id); err != nil {
		return nil, wrapErr("ошибка при получении гостиницы", err)
	}
	return &h, nil
}

// Create добавляет гостиницу.
func (r *HotelRepository) Create(ctx context.Context, h *model.Hotel) (*model.Hotel, error) {
	query := `INSERT INTO hotels (id, destination_id, name, category, address, room_types, facilities,
	          image_url, map_url, contact_phone, contact_email, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING *`
	var out model.Hotel
	err := r.db.QueryRowxContext(ctx, query,
		uuid.NewString(), h.DestinationID, h.Name, h.Category, h.Address, h.RoomTypes, h.Facilities,
		h.ImageURL, h.MapURL, h.ContactPhone, h.ContactEmail, h.IsActive,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось создать гостиницу", err)
	}
	return &out, nil
}

// Update перезаписывает редактируемые поля гостиницы.
func (r *HotelRepository) Update(ctx context.Context, h *model.Hotel) (*model.Hotel, error) {
	query := `UPDATE hotels SET destination_id=$1, name=$2, category=$3, address=$4, room_types=$5,
	          facilities=$6, image_url=$7, map_url=$8, contact_phone=$9, contact_email=$10, is_active=$11,
	          updated_at=now() WHERE id=$12 RETURNING *`
	var out model.Hotel
	err := r.db.QueryRowxContext(ctx, query,
		h.DestinationID, h.Name, h.Category, h.Address, h.RoomTypes, h.Facilities,
		h.ImageURL, h.MapURL, h.ContactPhone, h.ContactEmail, h.IsActive, h.ID,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось обновить гостиницу", err)
	}
	return &out, nil
}

// Delete удаляет гостиницу.
func (r *HotelRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM hotels WHERE id=$1", id)
	if err != nil {
		return wrapErr("не удалось удалить гостиницу", err)
	}
	return checkAffected("не удалось удалить гостиницу", res)
}

// Count возвращает количество гостиниц.
func (r *HotelRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "hotels")
}
