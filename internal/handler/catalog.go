package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pilgrimage/internal/service"
)

// ListDestinations обработчик для GET /api/destinations - активные места паломничества.
func (h *Handler) ListDestinations(c *gin.Context) {
	destinations, err := h.Catalog.ListDestinations(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, destinations)
}

// ListPackages обработчик для GET /api/packages - активные пакеты, избранные первыми.
func (h *Handler) ListPackages(c *gin.Context) {
	packages, err := h.Catalog.ListPackages(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, packages)
}

// GetPackage обработчик для GET /api/packages/:id - пакет с гостиницей, питанием и местом.
func (h *Handler) GetPackage(c *gin.Context) {
	details, err := h.Catalog.PackageDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// CreateBooking обработчик для POST /api/packages/:id/bookings.
func (h *Handler) CreateBooking(c *gin.Context) {
	var form service.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}
	booking, err := h.Bookings.CreateBooking(c.Request.Context(), userID(c), c.Param("id"), form)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// MyBookings обработчик для GET /api/me/bookings - история бронирований пользователя.
func (h *Handler) MyBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListForUser(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// MyCapabilities обработчик для GET /api/me/capabilities - какие разделы показывать пользователю.
func (h *Handler) MyCapabilities(c *gin.Context) {
	roles, err := h.roles(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, service.CapabilitiesFor(roles))
}
