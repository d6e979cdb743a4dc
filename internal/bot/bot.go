package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pilgrimage/internal/model"
	"pilgrimage/internal/repository"
	"pilgrimage/internal/service"
)

// Префиксы callback-данных inline-кнопок.
const (
	startPrefix    = "START_"
	completePrefix = "COMPLETE_"
)

const helpText = "Commands:\n" +
	"/link <code> - connect this chat with the code from the cleaner portal\n" +
	"/tasks - show your cleaning schedule"

// Sender — часть tgbotapi.BotAPI, которую использует бот.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot — Telegram-интерфейс к порталу уборщика.
type Bot struct {
	api       Sender
	cleaners  *service.CleanerService
	schedules *service.ScheduleService
	log       *slog.Logger
}

// New создает бота поверх сервисов уборщиков и заданий.
func New(api Sender, cleaners *service.CleanerService, schedules *service.ScheduleService, log *slog.Logger) *Bot {
	return &Bot{api: api, cleaners: cleaners, schedules: schedules, log: log}
}

// Run обрабатывает обновления до закрытия канала или отмены ctx.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate обрабатывает одно обновление: команду или нажатие кнопки.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if cq := update.CallbackQuery; cq != nil {
		b.handleCallback(ctx, cq)
		return
	}
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start", "help":
		b.reply(chatID, "Welcome to the pilgrimage housekeeping bot.\n\n"+helpText)
	case "link":
		b.link(ctx, chatID, strings.TrimSpace(msg.CommandArguments()))
	case "tasks":
		b.sendTasks(ctx, chatID)
	default:
		b.reply(chatID, "Unknown command.\n\n"+helpText)
	}
}

func (b *Bot) link(ctx context.Context, chatID int64, code string) {
	if code == "" {
		b.reply(chatID, fmt.Sprintf("Usage: /link <code>\nGet a code in the cleaner portal: it is valid for %d minutes and works once.",
			int(service.LinkCodeTTL.Minutes())))
		return
	}
	cleaner, err := b.cleaners.LinkTelegram(ctx, code, chatID)
	switch {
	case err == nil:
		b.log.Info("telegram chat linked", "cleaner_id", cleaner.ID, "chat_id", chatID)
		b.reply(chatID, fmt.Sprintf("Hello, %s! This chat is now linked. Send /tasks to see your schedule.", cleaner.FullName))
	case errors.Is(err, repository.ErrConflict):
		b.reply(chatID, "Could not link this chat: it is already linked to another cleaner account.")
	case errors.Is(err, service.ErrValidation):
		b.reply(chatID, "Could not link this chat: "+err.Error())
	default:
		b.log.Error("link telegram", "chat_id", chatID, "error", err)
		b.reply(chatID, "Something went wrong, please try again later.")
	}
}

func (b *Bot) sendTasks(ctx context.Context, chatID int64) {
	portal, err := b.schedules.PortalForChat(ctx, chatID)
	if err != nil {
		b.log.Error("load portal", "chat_id", chatID, "error", err)
		b.reply(chatID, "Something went wrong, please try again later.")
		return
	}
	if !portal.Assigned {
		b.reply(chatID, portal.Message+"\nIf you already are, link this chat with /link <code> from the cleaner portal.")
		return
	}
	if len(portal.Tasks) == 0 {
		b.reply(chatID, "You have no cleaning tasks scheduled.")
		return
	}
	for _, task := range portal.Tasks {
		msg := tgbotapi.NewMessage(chatID, FormatTask(task.CleaningSchedule))
		if kb := taskKeyboard(task); kb != nil {
			msg.ReplyMarkup = *kb
		}
		b.send(msg)
	}
}

// FormatTask — текст сообщения о задании.
func FormatTask(s model.CleaningSchedule) string {
	hotel := "hotel"
	if s.HotelName != nil && *s.HotelName != "" {
		hotel = *s.HotelName
	}
	text := fmt.Sprintf("%s - %s\nStatus: %s", s.ScheduledDate.String(), hotel, strings.ReplaceAll(string(s.Status), "_", " "))
	if s.Notes != nil && *s.Notes != "" {
		text += "\nNotes: " + *s.Notes
	}
	return text
}

// taskKeyboard показывает только кнопку следующего допустимого действия.
func taskKeyboard(task service.TaskView) *tgbotapi.InlineKeyboardMarkup {
	var btn tgbotapi.InlineKeyboardButton
	switch task.NextAction {
	case service.ActionStart:
		btn = tgbotapi.NewInlineKeyboardButtonData("Start", startPrefix+task.ID)
	case service.ActionComplete:
		btn = tgbotapi.NewInlineKeyboardButtonData("Complete", completePrefix+task.ID)
	default:
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(btn))
	return &kb
}

func parseCallback(data string) (action, scheduleID string, ok bool) {
	switch {
	case strings.HasPrefix(data, startPrefix):
		return service.ActionStart, strings.TrimPrefix(data, startPrefix), true
	case strings.HasPrefix(data, completePrefix):
		return service.ActionComplete, strings.TrimPrefix(data, completePrefix), true
	}
	return "", "", false
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Warn("answer callback", "error", err)
	}
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	action, scheduleID, ok := parseCallback(cq.Data)
	if !ok {
		return
	}
	updated, err := b.schedules.AdvanceForChat(ctx, chatID, scheduleID, action)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		b.reply(chatID, "Cannot update this task: it is not in your schedule.")
		return
	case errors.Is(err, service.ErrForbiddenTransition), errors.Is(err, service.ErrValidation):
		b.reply(chatID, "Cannot update this task: "+err.Error())
		return
	default:
		b.log.Error("advance task", "chat_id", chatID, "schedule_id", scheduleID, "error", err)
		b.reply(chatID, "Something went wrong, please try again later.")
		return
	}

	// Обновляем исходное сообщение: новый статус и следующая кнопка.
	view := service.TaskView{CleaningSchedule: *updated, NextAction: service.NextAction(updated.Status)}
	edit := tgbotapi.NewEditMessageText(chatID, cq.Message.MessageID, FormatTask(view.CleaningSchedule))
	if kb := taskKeyboard(view); kb != nil {
		edit.ReplyMarkup = kb
	}
	b.send(edit)
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Warn("telegram send failed", "error", err)
	}
}
