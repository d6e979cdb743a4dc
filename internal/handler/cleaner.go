package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pilgrimage/internal/service"
)

// CleanerTasks обработчик для GET /api/cleaner/tasks - портал уборщика.
func (h *Handler) CleanerTasks(c *gin.Context) {
	portal, err := h.Schedules.Portal(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, portal)
}

// StartTask обработчик для POST /api/cleaner/tasks/:id/start.
func (h *Handler) StartTask(c *gin.Context) {
	h.advanceTask(c, service.ActionStart)
}

// CompleteTask обработчик для POST /api/cleaner/tasks/:id/complete.
func (h *Handler) CompleteTask(c *gin.Context) {
	h.advanceTask(c, service.ActionComplete)
}

func (h *Handler) advanceTask(c *gin.Context, action string) {
	updated, err := h.Schedules.Advance(c.Request.Context(), userID(c), c.Param("id"), action)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, service.TaskView{CleaningSchedule: *updated, NextAction: service.NextAction(updated.Status)})
}

// IssueTelegramLinkCode обработчик для POST /api/cleaner/telegram-link - код для команды /link в боте.
func (h *Handler) IssueTelegramLinkCode(c *gin.Context) {
	code, err := h.Cleaners.IssueLinkCode(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, code)
}

// UnlinkMyTelegram обработчик для DELETE /api/cleaner/telegram-link.
func (h *Handler) UnlinkMyTelegram(c *gin.Context) {
	cleaner, err := h.Cleaners.UnlinkTelegramForUser(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cleaner)
}
