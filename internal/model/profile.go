package model

import "time"

// Role — роль пользователя в приложении.
type Role string

const (
	RoleAdmin   Role = "admin"
	RolePilgrim Role = "pilgrim"
	RoleCleaner Role = "cleaner"
)

// Valid сообщает, входит ли значение в перечисление app_role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RolePilgrim || r == RoleCleaner
}

// Profile — профиль зарегистрированного пользователя (паломника).
type Profile struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	Phone     *string   `db:"phone" json:"phone"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UserRole связывает пользователя с ролью.
type UserRole struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
