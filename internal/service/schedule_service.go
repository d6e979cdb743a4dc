package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pilgrimage/internal/metrics"
	"pilgrimage/internal/model"
	"pilgrimage/internal/repository"
)

// NotAssignedMessage показывается пользователю с ролью cleaner без записи в cleaners.
const NotAssignedMessage = "You are not assigned as a cleaner yet. Contact your admin."

// Действия, доступные уборщику над заданием.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
)

// ScheduleService — задания на уборку: админка и портал уборщика.
type ScheduleService struct {
	schedules ScheduleStore
	cleaners  CleanerStore
	log       *slog.Logger
}

// NewScheduleService создает сервис заданий на уборку.
func NewScheduleService(schedules ScheduleStore, cleaners CleanerStore, log *slog.Logger) *ScheduleService {
	return &ScheduleService{schedules: schedules, cleaners: cleaners, log: log}
}

// TaskView — задание с единственным доступным следующим действием.
type TaskView struct {
	model.CleaningSchedule
	NextAction string `json:"next_action,omitempty"`
}

// Portal — содержимое портала уборщика.
type Portal struct {
	Assigned bool           `json:"assigned"`
	Message  string         `json:"message,omitempty"`
	Cleaner  *model.Cleaner `json:"cleaner,omitempty"`
	Tasks    []TaskView     `json:"tasks"`
}

// NextAction возвращает кнопку, которую видит уборщик для статуса: start, complete или пусто.
func NextAction(status model.CleaningStatus) string {
	switch status {
	case model.CleaningPending:
		return ActionStart
	case model.CleaningInProgress:
		return ActionComplete
	}
	return ""
}

// actionTransition сопоставляет действие с ожидаемым текущим и новым статусом.
func actionTransition(action string) (from, to model.CleaningStatus, err error) {
	switch action {
	case ActionStart:
		from = model.CleaningPending
	case ActionComplete:
		from = model.CleaningInProgress
	default:
		return "", "", invalid("unknown action %q", action)
	}
	to, _ = from.Next()
	return from, to, nil
}

// List возвращает все задания для админки.
func (s *ScheduleService) List(ctx context.Context) ([]model.CleaningSchedule, error) {
	return s.schedules.List(ctx)
}

func normalizeSchedule(sc *model.CleaningSchedule) error {
	if err := requireID("cleaner_id", sc.CleanerID); err != nil {
		return err
	}
	if err := requireID("hotel_id", sc.HotelID); err != nil {
		return err
	}
	if sc.ScheduledDate.IsZero() {
		return invalid("scheduled date is required")
	}
	if sc.Status == "" {
		sc.Status = model.CleaningPending
	}
	if !sc.Status.Valid() {
		return invalid("unknown cleaning status %q", sc.Status)
	}
	sc.Notes = emptyToNil(sc.Notes)
	return nil
}

// Create добавляет задание; без статуса оно создается в pending.
func (s *ScheduleService) Create(ctx context.Context, sc model.CleaningSchedule) (*model.CleaningSchedule, error) {
	if err := normalizeSchedule(&sc); err != nil {
		return nil, err
	}
	return s.schedules.Create(ctx, &sc)
}

// Update перезаписывает задание. Администратор может выставить любой статус, в том числе вернуть назад.
func (s *ScheduleService) Update(ctx context.Context, id string, sc model.CleaningSchedule) (*model.CleaningSchedule, error) {
	if err := requireID("schedule id", id); err != nil {
		return nil, err
	}
	if err := normalizeSchedule(&sc); err != nil {
		return nil, err
	}
	sc.ID = id
	updated, err := s.schedules.Update(ctx, &sc)
	if err != nil {
		return nil, err
	}
	metrics.IncScheduleTransition("admin", string(updated.Status))
	return updated, nil
}

// Delete удаляет задание.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := requireID("schedule id", id); err != nil {
		return err
	}
	return s.schedules.Delete(ctx, id)
}

// Portal находит уборщика пользователя и его задания в порядке дат.
func (s *ScheduleService) Portal(ctx context.Context, userID string) (*Portal, error) {
	cleaner, err := s.cleaners.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &Portal{Assigned: false, Message: NotAssignedMessage, Tasks: []TaskView{}}, nil
		}
		return nil, err
	}
	return s.portalFor(ctx, cleaner)
}

// PortalForChat — то же, что Portal, но для уборщика, привязанного к чату Telegram.
func (s *ScheduleService) PortalForChat(ctx context.Context, chatID int64) (*Portal, error) {
	cleaner, err := s.cleaners.GetByTelegramChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &Portal{Assigned: false, Message: NotAssignedMessage, Tasks: []TaskView{}}, nil
		}
		return nil, err
	}
	return s.portalFor(ctx, cleaner)
}

func (s *ScheduleService) portalFor(ctx context.Context, cleaner *model.Cleaner) (*Portal, error) {
	schedules, err := s.schedules.ListByCleaner(ctx, cleaner.ID)
	if err != nil {
		return nil, err
	}
	tasks := make([]TaskView, 0, len(schedules))
	for _, sc := range schedules {
		tasks = append(tasks, TaskView{CleaningSchedule: sc, NextAction: NextAction(sc.Status)})
	}
	return &Portal{Assigned: true, Cleaner: cleaner, Tasks: tasks}, nil
}

// Advance выполняет действие уборщика над собственным заданием.
// Допускается только следующий переход: pending→in_progress (start), in_progress→completed (complete).
func (s *ScheduleService) Advance(ctx context.Context, userID, scheduleID, action string) (*model.CleaningSchedule, error) {
	cleaner, err := s.cleaners.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrForbiddenTransition, NotAssignedMessage)
		}
		return nil, err
	}
	return s.advance(ctx, cleaner, scheduleID, action, "portal")
}

// AdvanceForChat — то же, что Advance, для уборщика из Telegram.
func (s *ScheduleService) AdvanceForChat(ctx context.Context, chatID int64, scheduleID, action string) (*model.CleaningSchedule, error) {
	cleaner, err := s.cleaners.GetByTelegramChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrForbiddenTransition, NotAssignedMessage)
		}
		return nil, err
	}
	return s.advance(ctx, cleaner, scheduleID, action, "bot")
}

func (s *ScheduleService) advance(ctx context.Context, cleaner *model.Cleaner, scheduleID, action, source string) (*model.CleaningSchedule, error) {
	if err := requireID("schedule id", scheduleID); err != nil {
		return nil, err
	}
	from, to, err := actionTransition(action)
	if err != nil {
		return nil, err
	}
	current, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if current.CleanerID != cleaner.ID {
		// Чужие задания для уборщика не существуют.
		return nil, fmt.Errorf("ошибка при получении задания на уборку: %w", repository.ErrNotFound)
	}
	if current.Status != from {
		return nil, fmt.Errorf("%w: cannot %s a task that is %s", ErrForbiddenTransition, action, current.Status)
	}
	updated, err := s.schedules.UpdateStatus(ctx, scheduleID, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: task status changed concurrently", ErrForbiddenTransition)
		}
		return nil, err
	}
	metrics.IncScheduleTransition(source, string(to))
	s.log.Info("schedule advanced", "schedule_id", scheduleID, "cleaner_id", cleaner.ID, "status", to, "source", source)
	return updated, nil
}
