package repository

import (
	"context"

	"pilgrimage/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ProfileRepository обеспечивает доступ к профилям и ролям пользователей.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository создаёт новый репозиторий профилей.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// List возвращает все профили, новые первыми.
func (r *ProfileRepository) List(ctx context.Context) ([]model.Profile, error) {
	profiles := []model.Profile{}
	if err := r.db.SelectContext(ctx, &profiles, "SELECT * FROM profiles ORDER BY created_at DESC"); err != nil {
		return nil, wrapErr("ошибка при получении списка профилей", err)
	}
	return profiles, nil
}

// GetByUserID возвращает профиль пользователя.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.GetContext(ctx, &p, "SELECT * FROM profiles WHERE user_id=$1", userID); err != nil {
		return nil, wrapErr("ошибка при получении профиля", err)
	}
	return &p, nil
}

// Count возвращает количество профилей (паломников).
func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "profiles")
}

// RolesFor возвращает роли пользователя. Пустой список не является ошибкой.
func (r *ProfileRepository) RolesFor(ctx context.Context, userID string) ([]model.Role, error) {
	roles := []model.Role{}
	if err := r.db.SelectContext(ctx, &roles, "SELECT role FROM user_roles WHERE user_id=$1", userID); err != nil {
		return nil, wrapErr("ошибка при получении ролей пользователя", err)
	}
	return roles, nil
}

// GrantRole выдает роль пользователю (если еще не выдана).
func (r *ProfileRepository) GrantRole(ctx context.Context, userID string, role model.Role) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO user_roles (id, user_id, role) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING",
		uuid.NewString(), userID, role)
	return wrapErr("не удалось выдать роль", err)
}
