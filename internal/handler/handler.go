package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pilgrimage/internal/repository"
	"pilgrimage/internal/service"
)

// ErrorResponse — тело ответа с ошибкой; текст показывается пользователю как есть.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Services — сервисы, которые использует HTTP-слой.
type Services struct {
	Auth         *service.AuthService
	Catalog      *service.CatalogService
	Bookings     *service.BookingService
	Destinations *service.DestinationService
	Hotels       *service.HotelService
	FoodPlans    *service.FoodPlanService
	Packages     *service.PackageService
	Cleaners     *service.CleanerService
	Schedules    *service.ScheduleService
	Pilgrims     *service.PilgrimService
	Dashboard    *service.DashboardService
}

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	Services
	log        *slog.Logger
	userHeader string
}

// NewHandler создает новый Handler. userHeader — заголовок с UUID пользователя от прокси аутентификации.
func NewHandler(s Services, userHeader string, log *slog.Logger) *Handler {
	if userHeader == "" {
		userHeader = "X-User-ID"
	}
	return &Handler{Services: s, log: log, userHeader: userHeader}
}

// statusFor сопоставляет ошибку сервиса с HTTP-статусом.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict), errors.Is(err, service.ErrForbiddenTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(code, ErrorResponse{err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{err.Error()})
}

// Health обработчик для GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
