package service

import (
	"context"

	"pilgrimage/internal/model"
)

// Capabilities — действия, которые интерфейс показывает пользователю с данным набором ролей.
type Capabilities struct {
	Roles          []model.Role `json:"roles"`
	CanBook        bool         `json:"can_book"`
	CanViewHistory bool         `json:"can_view_history"`
	CanAdminister  bool         `json:"can_administer"`
	CanClean       bool         `json:"can_clean"`
}

// AuthService определяет роли пользователя. Аутентификация выполняется снаружи.
type AuthService struct {
	profiles ProfileStore
}

// NewAuthService создает сервис ролей.
func NewAuthService(profiles ProfileStore) *AuthService {
	return &AuthService{profiles: profiles}
}

// Roles возвращает роли пользователя; без записей в user_roles пользователь считается паломником.
func (s *AuthService) Roles(ctx context.Context, userID string) ([]model.Role, error) {
	roles, err := s.profiles.RolesFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return []model.Role{model.RolePilgrim}, nil
	}
	return roles, nil
}

// HasRole сообщает, есть ли want среди ролей.
func HasRole(roles []model.Role, want model.Role) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

// CapabilitiesFor переводит роли в видимые действия.
// Бронировать и смотреть историю может любой вошедший пользователь.
func CapabilitiesFor(roles []model.Role) Capabilities {
	return Capabilities{
		Roles:          roles,
		CanBook:        true,
		CanViewHistory: true,
		CanAdminister:  HasRole(roles, model.RoleAdmin),
		CanClean:       HasRole(roles, model.RoleCleaner),
	}
}
