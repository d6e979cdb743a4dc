package repository

import (
	"context"

	"pilgrimage/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const scheduleColumns = `s.id, s.cleaner_id, s.hotel_id, s.scheduled_date, s.status, s.notes, s.created_at, s.updated_at`

// ScheduleRepository обеспечивает доступ к заданиям на уборку.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository создает новый репозиторий заданий на уборку.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// List возвращает все задания с именем уборщика и названием гостиницы, ближайшие даты последними.
func (r *ScheduleRepository) List(ctx context.Context) ([]model.CleaningSchedule, error) {
	query := `SELECT ` + scheduleColumns + `, c.full_name AS cleaner_name, h.name AS hotel_name
	          FROM cleaning_schedules s
	          LEFT JOIN cleaners c ON c.id = s.cleaner_id
	          LEFT JOIN hotels h ON h.id = s.hotel_id
	          ORDER BY s.scheduled_date DESC`
	schedules := []model.CleaningSchedule{}
	if err := r.db.SelectContext(ctx, &schedules, query); err != nil {
		return nil, wrapErr("ошибка при получении списка заданий на уборку", err)
	}
	return schedules, nil
}

// ListByCleaner возвращает задания уборщика в порядке дат.
func (r *ScheduleRepository) ListByCleaner(ctx context.Context, cleanerID string) ([]model.CleaningSchedule, error) {
	query := `SELECT ` + scheduleColumns + `, h.name AS hotel_name
	          FROM cleaning_schedules s LEFT JOIN hotels h ON h.id = s.hotel_id
	          WHERE s.cleaner_id=$1
	          ORDER BY s.scheduled_date ASC`
	schedules := []model.CleaningSchedule{}
	if err := r.db.SelectContext(ctx, &schedules, query, cleanerID); err != nil {
		return nil, wrapErr("ошибка при получении заданий уборщика", err)
	}
	return schedules, nil
}

// GetByID получает задание на уборку по идентификатору.
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*model.CleaningSchedule, error) {
	var s model.CleaningSchedule
	if err := r.db.GetContext(ctx, &s, "SELECT * FROM cleaning_schedules WHERE id=$1", id); err != nil {
		return nil, wrapErr("ошибка при получении задания на уборку", err)
	}
	return &s, nil
}

// Create добавляет задание на уборку.
func (r *ScheduleRepository) Create(ctx context.Context, s *model.CleaningSchedule) (*model.CleaningSchedule, error) {
	var out model.CleaningSchedule
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO cleaning_schedules (id, cleaner_id, hotel_id, scheduled_date, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING *`,
		uuid.NewString(), s.CleanerID, s.HotelID, s.ScheduledDate, s.Status, s.Notes,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось создать задание на уборку", err)
	}
	return &out, nil
}

// Update перезаписывает задание целиком, включая произвольный статус.
func (r *ScheduleRepository) Update(ctx context.Context, s *model.CleaningSchedule) (*model.CleaningSchedule, error) {
	var out model.CleaningSchedule
	err := r.db.QueryRowxContext(ctx,
		`UPDATE cleaning_schedules SET cleaner_id=$1, hotel_id=$2, scheduled_date=$3, status=$4, notes=$5,
		 updated_at=now() WHERE id=$6 RETURNING *`,
		s.CleanerID, s.HotelID, s.ScheduledDate, s.Status, s.Notes, s.ID,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось обновить задание на уборку", err)
	}
	return &out, nil
}

// UpdateStatus меняет статус задания, только если текущий статус равен from.
// Повторный переход вернет ErrNotFound. Название гостиницы возвращается вместе с заданием.
func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id string, from, to model.CleaningStatus) (*model.CleaningSchedule, error) {
	var out model.CleaningSchedule
	err := r.db.QueryRowxContext(ctx,
		`UPDATE cleaning_schedules SET status=$1, updated_at=now()
		 WHERE id=$2 AND status=$3
		 RETURNING *, (SELECT name FROM hotels WHERE hotels.id = cleaning_schedules.hotel_id) AS hotel_name`,
		to, id, from,
	).StructScan(&out)
	if err != nil {
		return nil, wrapErr("не удалось обновить статус задания на уборку", err)
	}
	return &out, nil
}

// Delete удаляет задание на уборку.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cleaning_schedules WHERE id=$1", id)
	if err != nil {
		return wrapErr("не удалось удалить задание на уборку", err)
	}
	return checkAffected("не удалось удалить задание на уборку", res)
}
