package service

import (
	"context"
	"strings"

	"pilgrimage/internal/model"
)

// PilgrimService — список зарегистрированных пользователей для админки.
type PilgrimService struct {
	profiles ProfileStore
}

// NewPilgrimService создает сервис паломников.
func NewPilgrimService(profiles ProfileStore) *PilgrimService {
	return &PilgrimService{profiles: profiles}
}

// List возвращает профили, отфильтрованные по подстроке в имени или email без учета регистра.
func (s *PilgrimService) List(ctx context.Context, search string) ([]model.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return profiles, nil
	}
	out := []model.Profile{}
	for _, p := range profiles {
		if strings.Contains(strings.ToLower(p.FullName), q) ||
			strings.Contains(strings.ToLower(p.Email), q) {
			out = append(out, p)
		}
	}
	return out, nil
}
