package handler

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pilgrimage/internal/export"
	"pilgrimage/internal/model"
)

// crudService — общий вид сервисов экранов админки: получить все, создать, изменить, удалить.
type crudService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (*T, error)
	Update(ctx context.Context, id string, item T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// registerCRUD вешает GET /, POST /, PUT /:id и DELETE /:id на группу.
// После записи клиент перечитывает список целиком.
func registerCRUD[T any](h *Handler, g *gin.RouterGroup, svc crudService[T]) {
	g.GET("", func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})
	g.POST("", func(c *gin.Context) {
		var item T
		if err := c.ShouldBindJSON(&item); err != nil {
			badRequest(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), item)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})
	g.PUT("/:id", func(c *gin.Context) {
		var item T
		if err := c.ShouldBindJSON(&item); err != nil {
			badRequest(c, err)
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("id"), item)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})
	g.DELETE("/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			h.fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

// Dashboard обработчик для GET /api/admin/dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.Services.Dashboard.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// FormOptions обработчик для GET /api/admin/options - списки для выпадающих полей.
func (h *Handler) FormOptions(c *gin.Context) {
	opts, err := h.Services.Dashboard.Options(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// QuotePackage обработчик для POST /api/admin/packages/quote - итог по составляющим цены.
func (h *Handler) QuotePackage(c *gin.Context) {
	var costs model.CostBreakdown
	if err := c.ShouldBindJSON(&costs); err != nil {
		badRequest(c, err)
		return
	}
	total, err := h.Packages.Quote(costs)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_price": total})
}

// ListBookings обработчик для GET /api/admin/bookings?q=.
func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListAll(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

type statusRequest struct {
	Status model.BookingStatus `json:"status" binding:"required"`
}

// UpdateBookingStatus обработчик для PATCH /api/admin/bookings/:id/status.
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	booking, err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportBookings обработчик для GET /api/admin/bookings/export?q= - выгрузка в xlsx.
func (h *Handler) ExportBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListAll(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteBookings(&buf, bookings); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(time.Now())+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ListPilgrims обработчик для GET /api/admin/pilgrims?q=.
func (h *Handler) ListPilgrims(c *gin.Context) {
	profiles, err := h.Pilgrims.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// UnlinkCleanerTelegram обработчик для DELETE /api/admin/cleaners/:id/telegram - отвязка чата уборщика.
func (h *Handler) UnlinkCleanerTelegram(c *gin.Context) {
	cleaner, err := h.Cleaners.UnlinkTelegram(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cleaner)
}
