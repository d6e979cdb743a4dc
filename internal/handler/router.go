package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pilgrimage/internal/model"
)

// Register регистрирует все маршруты API на router.
func (h *Handler) Register(router *gin.Engine) {
	router.Use(Metrics())
	router.GET("/health", h.Health)

	api := router.Group("/api")
	api.Use(h.Identity())
	{
		api.GET("/destinations", h.ListDestinations)
		api.GET("/packages", h.ListPackages)
		api.GET("/packages/:id", h.GetPackage)
	}

	signedIn := api.Group("", RequireUser())
	{
		signedIn.POST("/packages/:id/bookings", h.CreateBooking)
		signedIn.GET("/me/bookings", h.MyBookings)
		signedIn.GET("/me/capabilities", h.MyCapabilities)
	}

	admin := api.Group("/admin", RequireUser(), h.RequireRole(model.RoleAdmin))
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/options", h.FormOptions)

		registerCRUD[model.Destination](h, admin.Group("/destinations"), h.Destinations)
		registerCRUD[model.Hotel](h, admin.Group("/hotels"), h.Hotels)
		registerCRUD[model.FoodPlan](h, admin.Group("/food-plans"), h.FoodPlans)
		registerCRUD[model.TravelPackage](h, admin.Group("/packages"), h.Packages)
		registerCRUD[model.Cleaner](h, admin.Group("/cleaners"), h.Cleaners)
		admin.DELETE("/cleaners/:id/telegram", h.UnlinkCleanerTelegram)
		registerCRUD[model.CleaningSchedule](h, admin.Group("/schedules"), h.Schedules)
		admin.POST("/packages/quote", h.QuotePackage)

		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/export", h.ExportBookings)
		admin.PATCH("/bookings/:id/status", h.UpdateBookingStatus)

		admin.GET("/pilgrims", h.ListPilgrims)
	}

	cleaner := api.Group("/cleaner", RequireUser(), h.RequireRole(model.RoleCleaner))
	{
		cleaner.GET("/tasks", h.CleanerTasks)
		cleaner.POST("/tasks/:id/start", h.StartTask)
		cleaner.POST("/tasks/:id/complete", h.CompleteTask)
		cleaner.POST("/telegram-link", h.IssueTelegramLinkCode)
		cleaner.DELETE("/telegram-link", h.UnlinkMyTelegram)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{"route not found"})
	})
}
