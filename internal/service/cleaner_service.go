package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"pilgrimage/internal/model"
	"pilgrimage/internal/repository"
)

// LinkCodeTTL — срок действия кода привязки Telegram.
const LinkCodeTTL = 15 * time.Minute

// Алфавит кода без похожих символов (0/O, 1/I); 32 знака, поэтому байт % 32 не смещает распределение.
const (
	linkCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	linkCodeLength   = 8
)

// LinkCode — одноразовый код для команды /link в боте.
type LinkCode struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CleanerService — управление уборщиками в админке и привязка их чатов Telegram.
type CleanerService struct {
	cleaners CleanerStore
	profiles ProfileStore
	now      func() time.Time
	newCode  func() (string, error)
}

// NewCleanerService создает сервис уборщиков.
func NewCleanerService(cleaners CleanerStore, profiles ProfileStore) *CleanerService {
	return &CleanerService{cleaners: cleaners, profiles: profiles, now: time.Now, newCode: randomLinkCode}
}

// List возвращает всех уборщиков.
func (s *CleanerService) List(ctx context.Context) ([]model.Cleaner, error) {
	return s.cleaners.List(ctx)
}

func normalizeCleaner(c *model.Cleaner) error {
	c.FullName = strings.TrimSpace(c.FullName)
	if c.FullName == "" {
		return invalid("full name is required")
	}
	var err error
	if c.HotelID, err = optionalID("hotel_id", c.HotelID); err != nil {
		return err
	}
	c.Phone = emptyToNil(c.Phone)
	return nil
}

// Create назначает зарегистрированного пользователя уборщиком.
// Пользователь должен уже иметь профиль; роль cleaner выдается вместе с записью.
func (s *CleanerService) Create(ctx context.Context, c model.Cleaner) (*model.Cleaner, error) {
	if err := requireID("user_id", c.UserID); err != nil {
		return nil, err
	}
	if err := normalizeCleaner(&c); err != nil {
		return nil, err
	}
	if _, err := s.profiles.GetByUserID(ctx, c.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("user %s is not registered; ask them to sign up first", c.UserID)
		}
		return nil, err
	}
	c.IsActive = true
	return s.cleaners.Create(ctx, &c)
}

// Update меняет имя, телефон, гостиницу и активность уборщика.
func (s *CleanerService) Update(ctx context.Context, id string, c model.Cleaner) (*model.Cleaner, error) {
	if err := requireID("cleaner id", id); err != nil {
		return nil, err
	}
	if err := normalizeCleaner(&c); err != nil {
		return nil, err
	}
	c.ID = id
	return s.cleaners.Update(ctx, &c)
}

// Delete удаляет уборщика.
func (s *CleanerService) Delete(ctx context.Context, id string) error {
	if err := requireID("cleaner id", id); err != nil {
		return err
	}
	return s.cleaners.Delete(ctx, id)
}

// IssueLinkCode выдает уборщику userID новый код привязки; прежний код перестает действовать.
func (s *CleanerService) IssueLinkCode(ctx context.Context, userID string) (*LinkCode, error) {
	cleaner, err := s.forUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	code, err := s.newCode()
	if err != nil {
		return nil, fmt.Errorf("не удалось сгенерировать код привязки: %w", err)
	}
	expiresAt := s.now().UTC().Add(LinkCodeTTL)
	if err := s.cleaners.SetLinkCode(ctx, cleaner.ID, code, expiresAt); err != nil {
		return nil, err
	}
	return &LinkCode{Code: code, ExpiresAt: expiresAt}, nil
}

// LinkTelegram привязывает чат chatID по коду из портала уборщика.
// Код одноразовый; прежний чат уборщика, если был, заменяется.
func (s *CleanerService) LinkTelegram(ctx context.Context, code string, chatID int64) (*model.Cleaner, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, invalid("link code is required")
	}
	cleaner, err := s.cleaners.ConsumeLinkCode(ctx, code, chatID, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("link code is unknown, already used or expired; get a new one in the cleaner portal")
		}
		return nil, err
	}
	return cleaner, nil
}

// UnlinkTelegram отвязывает чат уборщика с идентификатором id (админка).
func (s *CleanerService) UnlinkTelegram(ctx context.Context, id string) (*model.Cleaner, error) {
	if err := requireID("cleaner id", id); err != nil {
		return nil, err
	}
	return s.cleaners.UnlinkTelegram(ctx, id)
}

// UnlinkTelegramForUser отвязывает чат уборщика, вошедшего в портал.
func (s *CleanerService) UnlinkTelegramForUser(ctx context.Context, userID string) (*model.Cleaner, error) {
	cleaner, err := s.forUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.cleaners.UnlinkTelegram(ctx, cleaner.ID)
}

// forUser находит запись уборщика пользователя; без записи действие запрещено.
func (s *CleanerService) forUser(ctx context.Context, userID string) (*model.Cleaner, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	cleaner, err := s.cleaners.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrForbiddenTransition, NotAssignedMessage)
		}
		return nil, err
	}
	return cleaner, nil
}

func randomLinkCode() (string, error) {
	buf := make([]byte, linkCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = linkCodeAlphabet[int(b)%len(linkCodeAlphabet)]
	}
	return string(buf), nil
}
