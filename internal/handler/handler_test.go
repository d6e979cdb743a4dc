package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilgrimage/internal/model"
	"pilgrimage/internal/service"
	"pilgrimage/internal/testutil/memstore"
)

type testAPI struct {
	router *gin.Engine
	store  *memstore.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := memstore.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := service.NewCatalogService(st.Destinations(), st.Packages(), st.Hotels(), st.FoodPlans(), log)
	h := NewHandler(Services{
		Auth:         service.NewAuthService(st.Profiles()),
		Catalog:      catalog,
		Bookings:     service.NewBookingService(st.Bookings(), catalog, log),
		Destinations: service.NewDestinationService(st.Destinations()),
		Hotels:       service.NewHotelService(st.Hotels()),
		FoodPlans:    service.NewFoodPlanService(st.FoodPlans()),
		Packages:     service.NewPackageService(st.Packages()),
		Cleaners:     service.NewCleanerService(st.Cleaners(), st.Profiles()),
		Schedules:    service.NewScheduleService(st.Schedules(), st.Cleaners(), log),
		Pilgrims:     service.NewPilgrimService(st.Profiles()),
		Dashboard: service.NewDashboardService(st.Destinations(), st.Hotels(), st.FoodPlans(), st.Packages(),
			st.Bookings(), st.Profiles(), st.Cleaners()),
	}, "X-User-ID", log)
	router := gin.New()
	h.Register(router)
	return &testAPI{router: router, store: st}
}

func (a *testAPI) do(t *testing.T, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) user(t *testing.T, roles ...model.Role) string {
	t.Helper()
	id := uuid.NewString()
	a.store.Profiles().Add(model.Profile{UserID: id, FullName: "User " + id[:4], Email: id[:4] + "@example.com"})
	for _, r := range roles {
		require.NoError(t, a.store.Profiles().GrantRole(context.Background(), id, r))
	}
	return id
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestIdentityGating(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/me/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodGet, "/api/me/bookings", "not-a-uuid", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	pilgrim := api.user(t)
	w = api.do(t, http.MethodGet, "/api/me/bookings", pilgrim, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/admin/dashboard", pilgrim, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/cleaner/tasks", pilgrim, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	caps := decode[service.Capabilities](t, api.do(t, http.MethodGet, "/api/me/capabilities", pilgrim, nil))
	assert.Equal(t, []model.Role{model.RolePilgrim}, caps.Roles)
	assert.False(t, caps.CanAdminister)
}

func TestAdminCatalogAndBookingFlow(t *testing.T) {
	api := newTestAPI(t)
	admin := api.user(t, model.RoleAdmin)

	w := api.do(t, http.MethodPost, "/api/admin/destinations", admin, map[string]interface{}{
		"name": "Varanasi", "highlights": []string{"Ghats", " "},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	dest := decode[model.Destination](t, w)
	assert.Equal(t, []string{"Ghats"}, []string(dest.Highlights))

	w = api.do(t, http.MethodPost, "/api/admin/hotels", admin, map[string]interface{}{
		"destination_id": dest.ID, "name": "Ganga View", "category": "Deluxe",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hotel := decode[model.Hotel](t, w)

	w = api.do(t, http.MethodPost, "/api/admin/packages/quote", admin, map[string]float64{
		"travel_cost": 1000, "accommodation_cost": 2000, "food_cost": 500, "tax_amount": 300,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_price":3800}`, w.Body.String())

	w = api.do(t, http.MethodPost, "/api/admin/packages", admin, map[string]interface{}{
		"name": "Kashi Darshan", "tier": "premium", "duration_days": 5, "travel_type": "Train",
		"destination_id": dest.ID, "hotel_id": hotel.ID,
		"travel_cost": 3000, "accommodation_cost": 4000, "food_cost": 1000, "tax_amount": 499,
		"is_featured": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pkg := decode[model.TravelPackage](t, w)
	assert.Equal(t, 8499.0, pkg.TotalPrice)

	packages := decode[[]model.TravelPackage](t, api.do(t, http.MethodGet, "/api/packages", "", nil))
	require.Len(t, packages, 1)

	details := decode[service.PackageDetails](t, api.do(t, http.MethodGet, "/api/packages/"+pkg.ID, "", nil))
	require.NotNil(t, details.Hotel)
	assert.Equal(t, "Ganga View", details.Hotel.Name)
	assert.Nil(t, details.FoodPlan)

	pilgrim := api.user(t)
	w = api.do(t, http.MethodPost, "/api/packages/"+pkg.ID+"/bookings", pilgrim, map[string]interface{}{
		"contact_name": "Asha Rao", "contact_email": "asha@example.com", "contact_phone": "900",
		"travel_date": "2026-12-01", "num_travelers": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode[model.Booking](t, w)
	assert.Equal(t, 16998.0, booking.TotalPrice)
	assert.Equal(t, "Ganga View (Deluxe)", *booking.HotelDetails)
	assert.Equal(t, "N/A", *booking.FoodDetails)

	mine := decode[[]model.Booking](t, api.do(t, http.MethodGet, "/api/me/bookings", pilgrim, nil))
	require.Len(t, mine, 1)

	found := decode[[]model.Booking](t, api.do(t, http.MethodGet, "/api/admin/bookings?q=ASHA", admin, nil))
	assert.Len(t, found, 1)
	found = decode[[]model.Booking](t, api.do(t, http.MethodGet, "/api/admin/bookings?q=tirupati", admin, nil))
	assert.Empty(t, found)

	w = api.do(t, http.MethodPatch, "/api/admin/bookings/"+booking.ID+"/status", admin, map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, model.BookingConfirmed, decode[model.Booking](t, w).Status)

	w = api.do(t, http.MethodGet, "/api/admin/bookings/export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())

	stats := decode[service.DashboardStats](t, api.do(t, http.MethodGet, "/api/admin/dashboard", admin, nil))
	assert.Equal(t, 1, stats.Bookings)
	assert.Equal(t, 2, stats.Pilgrims)

	// Место с гостиницей удалить нельзя: ответ базы возвращается как есть.
	w = api.do(t, http.MethodDelete, "/api/admin/destinations/"+dest.ID, admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "violates foreign key constraint")
}

func TestAdminErrors(t *testing.T) {
	api := newTestAPI(t)
	admin := api.user(t, model.RoleAdmin)

	w := api.do(t, http.MethodPost, "/api/admin/destinations", admin, map[string]string{"name": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "name is required")

	w = api.do(t, http.MethodPut, "/api/admin/hotels/"+uuid.NewString(), admin, map[string]string{
		"destination_id": uuid.NewString(), "name": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodDelete, "/api/admin/food-plans/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPatch, "/api/admin/bookings/"+uuid.NewString()+"/status", admin, map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	api.store.Err = errors.New("connection reset by peer")
	w = api.do(t, http.MethodGet, "/api/admin/pilgrims", admin, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"connection reset by peer"}`, w.Body.String())
}

func TestCleanerPortal(t *testing.T) {
	api := newTestAPI(t)
	admin := api.user(t, model.RoleAdmin)
	cleanerUser := api.user(t, model.RoleCleaner)

	w := api.do(t, http.MethodGet, "/api/cleaner/tasks", cleanerUser, nil)
	require.Equal(t, http.StatusOK, w.Code)
	portal := decode[map[string]interface{}](t, w)
	assert.Equal(t, false, portal["assigned"])
	assert.Equal(t, "You are not assigned as a cleaner yet. Contact your admin.", portal["message"])

	w = api.do(t, http.MethodPost, "/api/admin/cleaners", admin, map[string]string{"user_id": cleanerUser, "full_name": "Meena"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cleaner := decode[model.Cleaner](t, w)

	w = api.do(t, http.MethodPost, "/api/admin/cleaners", admin, map[string]string{"user_id": uuid.NewString(), "full_name": "Nobody"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/admin/schedules", admin, map[string]string{
		"cleaner_id": cleaner.ID, "hotel_id": uuid.NewString(), "scheduled_date": "2026-11-02",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	task := decode[model.CleaningSchedule](t, w)
	assert.Equal(t, model.CleaningPending, task.Status)

	view := decode[service.Portal](t, api.do(t, http.MethodGet, "/api/cleaner/tasks", cleanerUser, nil))
	require.True(t, view.Assigned)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "start", view.Tasks[0].NextAction)

	w = api.do(t, http.MethodPost, "/api/cleaner/tasks/"+task.ID+"/complete", cleanerUser, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodPost, "/api/cleaner/tasks/"+task.ID+"/start", cleanerUser, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	started := decode[service.TaskView](t, w)
	assert.Equal(t, model.CleaningInProgress, started.Status)
	assert.Equal(t, "complete", started.NextAction)

	w = api.do(t, http.MethodPost, "/api/cleaner/tasks/"+task.ID+"/start", cleanerUser, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodPost, "/api/cleaner/tasks/"+task.ID+"/complete", cleanerUser, nil)
	require.Equal(t, http.StatusOK, w.Code)

	all := decode[[]model.CleaningSchedule](t, api.do(t, http.MethodGet, "/api/admin/schedules", admin, nil))
	require.Len(t, all, 1)
	assert.Equal(t, model.CleaningCompleted, all[0].Status)
}

func TestTelegramLinkRoutes(t *testing.T) {
	api := newTestAPI(t)
	admin := api.user(t, model.RoleAdmin)
	cleanerUser := api.user(t, model.RoleCleaner)

	w := api.do(t, http.MethodPost, "/api/cleaner/telegram-link", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = api.do(t, http.MethodPost, "/api/cleaner/telegram-link", api.user(t), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = api.do(t, http.MethodPost, "/api/cleaner/telegram-link", cleanerUser, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodPost, "/api/admin/cleaners", admin, map[string]string{"user_id": cleanerUser, "full_name": "Meena"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cleaner := decode[model.Cleaner](t, w)

	w = api.do(t, http.MethodPost, "/api/cleaner/telegram-link", cleanerUser, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	code := decode[service.LinkCode](t, w)
	assert.Len(t, code.Code, 8)
	assert.False(t, code.ExpiresAt.IsZero())

	w = api.do(t, http.MethodGet, "/api/admin/cleaners", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), code.Code)

	links := service.NewCleanerService(api.store.Cleaners(), api.store.Profiles())
	_, err := links.LinkTelegram(context.Background(), code.Code, 77)
	require.NoError(t, err)

	w = api.do(t, http.MethodDelete, "/api/admin/cleaners/"+cleaner.ID+"/telegram", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, decode[model.Cleaner](t, w).TelegramChatID)

	w = api.do(t, http.MethodPost, "/api/cleaner/telegram-link", cleanerUser, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	_, err = links.LinkTelegram(context.Background(), decode[service.LinkCode](t, w).Code, 78)
	require.NoError(t, err)
	w = api.do(t, http.MethodDelete, "/api/cleaner/telegram-link", cleanerUser, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[model.Cleaner](t, w).TelegramChatID)

	w = api.do(t, http.MethodDelete, "/api/admin/cleaners/"+uuid.NewString()+"/telegram", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(t, http.MethodDelete, "/api/admin/cleaners/bad-id/telegram", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
