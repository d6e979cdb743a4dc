package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilgrimage/internal/model"
	"pilgrimage/internal/repository"
	"pilgrimage/internal/testutil/memstore"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

type fixture struct {
	store    *memstore.Store
	catalog  *CatalogService
	bookings *BookingService
	packages *PackageService
	cleaners *CleanerService
	schedule *ScheduleService
}

func newFixture() *fixture {
	st := memstore.New()
	log := discardLogger()
	catalog := NewCatalogService(st.Destinations(), st.Packages(), st.Hotels(), st.FoodPlans(), log)
	return &fixture{
		store:    st,
		catalog:  catalog,
		bookings: NewBookingService(st.Bookings(), catalog, log),
		packages: NewPackageService(st.Packages()),
		cleaners: NewCleanerService(st.Cleaners(), st.Profiles()),
		schedule: NewScheduleService(st.Schedules(), st.Cleaners(), log),
	}
}

// seedPackage создает место, гостиницу, план питания и пакет с ценой 8499.
func (f *fixture) seedPackage(t *testing.T) *model.TravelPackage {
	t.Helper()
	ctx := context.Background()
	dest, err := f.store.Destinations().Create(ctx, &model.Destination{Name: "Varanasi", IsActive: true})
	require.NoError(t, err)
	hotel, err := f.store.Hotels().Create(ctx, &model.Hotel{DestinationID: dest.ID, Name: "Ganga View", Category: strPtr("Deluxe"), IsActive: true})
	require.NoError(t, err)
	food, err := f.store.FoodPlans().Create(ctx, &model.FoodPlan{Name: "Satvik", MealsPerDay: 3})
	require.NoError(t, err)

	pkg, err := f.packages.Create(ctx, model.TravelPackage{
		Name:              "Kashi Darshan",
		Tier:              model.TierPremium,
		DurationDays:      5,
		TravelType:        strPtr("Train"),
		DestinationID:     &dest.ID,
		HotelID:           &hotel.ID,
		FoodPlanID:        &food.ID,
		TravelCost:        3000,
		AccommodationCost: 4000,
		FoodCost:          1000,
		TaxAmount:         499,
	})
	require.NoError(t, err)
	return pkg
}

func validForm() BookingForm {
	return BookingForm{
		ContactName:  "Asha Rao",
		ContactEmail: "asha@example.com",
		ContactPhone: "+91 90000 00000",
		TravelDate:   "2026-12-01",
		NumTravelers: 2,
	}
}

func TestCreateBookingSnapshotsPackage(t *testing.T) {
	f := newFixture()
	pkg := f.seedPackage(t)
	require.Equal(t, 8499.0, pkg.TotalPrice)
	userID := uuid.NewString()

	b, err := f.bookings.CreateBooking(context.Background(), userID, pkg.ID, validForm())
	require.NoError(t, err)

	assert.Equal(t, 16998.0, b.TotalPrice)
	assert.Equal(t, "Kashi Darshan", b.PackageName)
	assert.Equal(t, model.TierPremium, b.Tier)
	assert.Equal(t, model.BookingPending, b.Status)
	assert.Equal(t, "Train - 5 days", *b.TravelDetails)
	assert.Equal(t, "Ganga View (Deluxe)", *b.HotelDetails)
	assert.Equal(t, "Satvik - 3 meals/day", *b.FoodDetails)
	assert.Equal(t, "2026-12-01", b.TravelDate.String())
	assert.Nil(t, b.SpecialRequests)

	// Изменение пакета после бронирования не меняет сохраненную цену.
	pkg.TravelCost = 10000
	_, err = f.packages.Update(context.Background(), pkg.ID, *pkg)
	require.NoError(t, err)
	history, err := f.bookings.ListForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 16998.0, history[0].TotalPrice)
}

func TestCreateBookingWithoutHotelOrFood(t *testing.T) {
	f := newFixture()
	pkg, err := f.packages.Create(context.Background(), model.TravelPackage{Name: "Day trip", TravelCost: 500})
	require.NoError(t, err)

	form := validForm()
	form.NumTravelers = 0
	b, err := f.bookings.CreateBooking(context.Background(), uuid.NewString(), pkg.ID, form)
	require.NoError(t, err)
	assert.Equal(t, 1, b.NumTravelers)
	assert.Equal(t, 500.0, b.TotalPrice)
	assert.Equal(t, "N/A - 1 days", *b.TravelDetails)
	assert.Equal(t, "N/A", *b.HotelDetails)
	assert.Equal(t, "N/A", *b.FoodDetails)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture()
	pkg := f.seedPackage(t)

	cases := map[string]func(*BookingForm){
		"missing name":   func(b *BookingForm) { b.ContactName = "  " },
		"bad email":      func(b *BookingForm) { b.ContactEmail = "asha" },
		"missing phone":  func(b *BookingForm) { b.ContactPhone = "" },
		"missing date":   func(b *BookingForm) { b.TravelDate = "" },
		"bad date":       func(b *BookingForm) { b.TravelDate = "01/12/2026" },
		"too many":       func(b *BookingForm) { b.NumTravelers = MaxTravelers + 1 },
		"negative count": func(b *BookingForm) { b.NumTravelers = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			form := validForm()
			mutate(&form)
			_, err := f.bookings.CreateBooking(context.Background(), uuid.NewString(), pkg.ID, form)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err := f.bookings.CreateBooking(context.Background(), uuid.NewString(), uuid.NewString(), validForm())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFilterBookingsCaseInsensitive(t *testing.T) {
	bookings := []model.Booking{
		{ID: "1", PackageName: "Kashi Darshan", ContactName: strPtr("Asha")},
		{ID: "2", PackageName: "Char Dham", ContactName: strPtr("Ravi KUMAR")},
		{ID: "3", PackageName: "Tirupati", ContactName: nil},
	}

	got := FilterBookings(bookings, "kashi")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got = FilterBookings(bookings, "kumar")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	assert.Len(t, FilterBookings(bookings, "  "), 3)
	assert.Empty(t, FilterBookings(bookings, "zzz"))
}

func TestBookingUpdateStatus(t *testing.T) {
	f := newFixture()
	pkg := f.seedPackage(t)
	b, err := f.bookings.CreateBooking(context.Background(), uuid.NewString(), pkg.ID, validForm())
	require.NoError(t, err)

	updated, err := f.bookings.UpdateStatus(context.Background(), b.ID, model.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, updated.Status)

	_, err = f.bookings.UpdateStatus(context.Background(), b.ID, "shipped")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPackageQuoteAndSaveUseComponentSum(t *testing.T) {
	f := newFixture()
	costs := model.CostBreakdown{TravelCost: 1000, AccommodationCost: 2000, FoodCost: 500, TaxAmount: 300}

	total, err := f.packages.Quote(costs)
	require.NoError(t, err)
	assert.Equal(t, 3800.0, total)

	pkg, err := f.packages.Create(context.Background(), model.TravelPackage{
		Name:              "Quoted",
		TravelCost:        1000,
		AccommodationCost: 2000,
		FoodCost:          500,
		TaxAmount:         300,
		TotalPrice:        1, // игнорируется
	})
	require.NoError(t, err)
	assert.Equal(t, 3800.0, pkg.TotalPrice)
	assert.Equal(t, model.TierBasic, pkg.Tier)
	assert.True(t, pkg.IsActive)

	_, err = f.packages.Quote(model.CostBreakdown{TaxAmount: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPackageValidation(t *testing.T) {
	f := newFixture()
	_, err := f.packages.Create(context.Background(), model.TravelPackage{Name: "x", Tier: "gold"})
	assert.ErrorIs(t, err, ErrValidation)

	rating := 6.0
	_, err = f.packages.Create(context.Background(), model.TravelPackage{Name: "x", Rating: &rating})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.packages.Create(context.Background(), model.TravelPackage{Name: "x", HotelID: strPtr("not-a-uuid")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPackageDetailsToleratesMissingParts(t *testing.T) {
	f := newFixture()
	missing := uuid.NewString()
	pkg, err := f.packages.Create(context.Background(), model.TravelPackage{Name: "Orphan", HotelID: &missing})
	require.NoError(t, err)

	details, err := f.catalog.PackageDetails(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Orphan", details.Package.Name)
	assert.Nil(t, details.Hotel)
	assert.Nil(t, details.FoodPlan)
	assert.Nil(t, details.Destination)
}

func TestDeleteReferencedDestinationConflicts(t *testing.T) {
	f := newFixture()
	destinations := NewDestinationService(f.store.Destinations())
	hotels := NewHotelService(f.store.Hotels())
	ctx := context.Background()

	dest, err := destinations.Create(ctx, model.Destination{Name: "Puri", Highlights: []string{" Jagannath ", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jagannath"}, []string(dest.Highlights))
	_, err = hotels.Create(ctx, model.Hotel{DestinationID: dest.ID, Name: "Sea Breeze"})
	require.NoError(t, err)

	err = destinations.Delete(ctx, dest.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Contains(t, err.Error(), "violates foreign key constraint")
}

func TestCleanerCreateRequiresProfile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID := uuid.NewString()

	_, err := f.cleaners.Create(ctx, model.Cleaner{UserID: userID, FullName: "Meena"})
	assert.ErrorIs(t, err, ErrValidation)

	f.store.Profiles().Add(model.Profile{UserID: userID, FullName: "Meena", Email: "meena@example.com"})
	c, err := f.cleaners.Create(ctx, model.Cleaner{UserID: userID, FullName: "Meena"})
	require.NoError(t, err)
	assert.True(t, c.IsActive)

	roles, err := NewAuthService(f.store.Profiles()).Roles(ctx, userID)
	require.NoError(t, err)
	assert.Contains(t, roles, model.RoleCleaner)
}

func TestPortalNotAssigned(t *testing.T) {
	f := newFixture()
	portal, err := f.schedule.Portal(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, portal.Assigned)
	assert.Equal(t, "You are not assigned as a cleaner yet. Contact your admin.", portal.Message)
	assert.NotNil(t, portal.Tasks)
}

func (f *fixture) seedCleaner(t *testing.T) (userID string, task *model.CleaningSchedule) {
	t.Helper()
	ctx := context.Background()
	userID = uuid.NewString()
	f.store.Profiles().Add(model.Profile{UserID: userID, FullName: "Meena"})
	c, err := f.cleaners.Create(ctx, model.Cleaner{UserID: userID, FullName: "Meena"})
	require.NoError(t, err)
	task, err = f.schedule.Create(ctx, model.CleaningSchedule{
		CleanerID:     c.ID,
		HotelID:       uuid.NewString(),
		ScheduledDate: model.NewDate(mustDate(t, "2026-11-02")),
	})
	require.NoError(t, err)
	return userID, task
}

func TestAdvanceForwardOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID, task := f.seedCleaner(t)
	assert.Equal(t, model.CleaningPending, task.Status)

	portal, err := f.schedule.Portal(ctx, userID)
	require.NoError(t, err)
	require.True(t, portal.Assigned)
	require.Len(t, portal.Tasks, 1)
	assert.Equal(t, ActionStart, portal.Tasks[0].NextAction)

	_, err = f.schedule.Advance(ctx, userID, task.ID, ActionComplete)
	assert.ErrorIs(t, err, ErrForbiddenTransition)

	started, err := f.schedule.Advance(ctx, userID, task.ID, ActionStart)
	require.NoError(t, err)
	assert.Equal(t, model.CleaningInProgress, started.Status)

	_, err = f.schedule.Advance(ctx, userID, task.ID, ActionStart)
	assert.ErrorIs(t, err, ErrForbiddenTransition)

	portal, err = f.schedule.Portal(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, ActionComplete, portal.Tasks[0].NextAction)

	done, err := f.schedule.Advance(ctx, userID, task.ID, ActionComplete)
	require.NoError(t, err)
	assert.Equal(t, model.CleaningCompleted, done.Status)

	portal, err = f.schedule.Portal(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, portal.Tasks[0].NextAction)
}

func TestAdvanceRejectsOtherCleanersTask(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, task := f.seedCleaner(t)
	otherUser, _ := f.seedCleaner(t)

	_, err := f.schedule.Advance(ctx, otherUser, task.ID, ActionStart)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.schedule.Advance(ctx, uuid.NewString(), task.ID, ActionStart)
	assert.ErrorIs(t, err, ErrForbiddenTransition)

	_, err = f.schedule.Advance(ctx, otherUser, task.ID, "finish")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdvanceForChat(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID, task := f.seedCleaner(t)

	f.linkChat(t, userID, 4242)

	portal, err := f.schedule.PortalForChat(ctx, 4242)
	require.NoError(t, err)
	require.True(t, portal.Assigned)

	started, err := f.schedule.AdvanceForChat(ctx, 4242, task.ID, ActionStart)
	require.NoError(t, err)
	assert.Equal(t, model.CleaningInProgress, started.Status)

	portal, err = f.schedule.PortalForChat(ctx, 1)
	require.NoError(t, err)
	assert.False(t, portal.Assigned)
}

func TestAdminScheduleUpdateAllowsAnyStatus(t *testing.T) {
	f := newFixture()
	_, task := f.seedCleaner(t)
	task.Status = model.CleaningCompleted
	updated, err := f.schedule.Update(context.Background(), task.ID, *task)
	require.NoError(t, err)
	assert.Equal(t, model.CleaningCompleted, updated.Status)

	updated.Status = model.CleaningPending
	updated, err = f.schedule.Update(context.Background(), task.ID, *updated)
	require.NoError(t, err)
	assert.Equal(t, model.CleaningPending, updated.Status)

	updated.Status = "done"
	_, err = f.schedule.Update(context.Background(), task.ID, *updated)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPilgrimSearch(t *testing.T) {
	st := memstore.New()
	st.Profiles().Add(model.Profile{UserID: uuid.NewString(), FullName: "Asha Rao", Email: "asha@example.com"})
	st.Profiles().Add(model.Profile{UserID: uuid.NewString(), FullName: "Ravi", Email: "RAVI@mail.in"})
	svc := NewPilgrimService(st.Profiles())

	got, err := svc.List(context.Background(), "ravi@")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ravi", got[0].FullName)

	got, err = svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDashboardStats(t *testing.T) {
	f := newFixture()
	f.seedPackage(t)
	f.seedCleaner(t)
	st := f.store
	dash := NewDashboardService(st.Destinations(), st.Hotels(), st.FoodPlans(), st.Packages(), st.Bookings(), st.Profiles(), st.Cleaners())

	stats, err := dash.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{Destinations: 1, Hotels: 1, Packages: 1, Pilgrims: 1, Cleaners: 1}, *stats)

	opts, err := dash.Options(context.Background())
	require.NoError(t, err)
	assert.Len(t, opts.Hotels, 1)
	assert.Len(t, opts.Cleaners, 1)

	st.Err = errors.New("connection refused")
	_, err = dash.Stats(context.Background())
	assert.Error(t, err)
}

func TestCapabilities(t *testing.T) {
	st := memstore.New()
	auth := NewAuthService(st.Profiles())
	userID := uuid.NewString()

	roles, err := auth.Roles(context.Background(), userID)
	require.NoError(t, err)
	caps := CapabilitiesFor(roles)
	assert.Equal(t, []model.Role{model.RolePilgrim}, caps.Roles)
	assert.True(t, caps.CanBook)
	assert.False(t, caps.CanAdminister)
	assert.False(t, caps.CanClean)

	require.NoError(t, st.Profiles().GrantRole(context.Background(), userID, model.RoleAdmin))
	roles, err = auth.Roles(context.Background(), userID)
	require.NoError(t, err)
	caps = CapabilitiesFor(roles)
	assert.True(t, caps.CanAdminister)
	assert.False(t, caps.CanClean)
}

func TestFoodPlanAndHotelDefaults(t *testing.T) {
	st := memstore.New()
	fp, err := NewFoodPlanService(st.FoodPlans()).Create(context.Background(), model.FoodPlan{Name: "Basic"})
	require.NoError(t, err)
	assert.Equal(t, "Vegetarian", fp.MealType)
	assert.Equal(t, 3, fp.MealsPerDay)

	_, err = NewFoodPlanService(st.FoodPlans()).Create(context.Background(), model.FoodPlan{Name: "Cheap", Price: -5})
	assert.ErrorIs(t, err, ErrValidation)

	h, err := NewHotelService(st.Hotels()).Create(context.Background(), model.Hotel{DestinationID: uuid.NewString(), Name: "Inn"})
	require.NoError(t, err)
	assert.Equal(t, "Standard", *h.Category)

	_, err = NewHotelService(st.Hotels()).Create(context.Background(), model.Hotel{Name: "Nowhere"})
	assert.ErrorIs(t, err, ErrValidation)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestPackageItineraryFromJSON(t *testing.T) {
	var p model.TravelPackage
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Tour","itinerary":[{"day":1,"title":"Arrive"}]}`), &p))

	svc := NewPackageService(memstore.New().Packages())
	created, err := svc.Create(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, created.Itinerary.Valid)
	assert.JSONEq(t, `[{"day":1,"title":"Arrive"}]`, string(created.Itinerary.JSONText))

	created.Itinerary.JSONText = nil
	updated, err := svc.Update(context.Background(), created.ID, *created)
	require.NoError(t, err)
	assert.False(t, updated.Itinerary.Valid)
}

// linkChat выдает уборщику код и привязывает по нему чат.
func (f *fixture) linkChat(t *testing.T, userID string, chatID int64) {
	t.Helper()
	code, err := f.cleaners.IssueLinkCode(context.Background(), userID)
	require.NoError(t, err)
	_, err = f.cleaners.LinkTelegram(context.Background(), code.Code, chatID)
	require.NoError(t, err)
}

func TestLinkTelegramRequiresIssuedCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID, task := f.seedCleaner(t)

	// Идентификатор пользователя не является кодом.
	_, err := f.cleaners.LinkTelegram(ctx, userID, 999)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.cleaners.LinkTelegram(ctx, "ZZZZ2222", 999)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = f.cleaners.LinkTelegram(ctx, "  ", 999)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.schedule.AdvanceForChat(ctx, 999, task.ID, ActionStart)
	assert.ErrorIs(t, err, ErrForbiddenTransition)
	portal, err := f.schedule.Portal(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, model.CleaningPending, portal.Tasks[0].Status)
}

func TestLinkCodeIsSingleUse(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID, _ := f.seedCleaner(t)

	code, err := f.cleaners.IssueLinkCode(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, code.Code, 8)
	assert.Equal(t, strings.ToUpper(code.Code), code.Code)

	linked, err := f.cleaners.LinkTelegram(ctx, strings.ToLower(code.Code), 100)
	require.NoError(t, err)
	require.NotNil(t, linked.TelegramChatID)
	assert.Equal(t, int64(100), *linked.TelegramChatID)

	_, err = f.cleaners.LinkTelegram(ctx, code.Code, 200)
	assert.ErrorIs(t, err, ErrValidation)

	portal, err := f.schedule.PortalForChat(ctx, 200)
	require.NoError(t, err)
	assert.False(t, portal.Assigned)
}

func TestLinkCodeExpires(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID, _ := f.seedCleaner(t)

	issuedAt := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	f.cleaners.now = func() time.Time { return issuedAt }
	code, err := f.cleaners.IssueLinkCode(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(LinkCodeTTL), code.ExpiresAt)

	f.cleaners.now = func() time.Time { return issuedAt.Add(LinkCodeTTL) }
	_, err = f.cleaners.LinkTelegram(ctx, code.Code, 100)
	assert.ErrorIs(t, err, ErrValidation)

	// Новый код заменяет просроченный.
	code, err = f.cleaners.IssueLinkCode(ctx, userID)
	require.NoError(t, err)
	_, err = f.cleaners.LinkTelegram(ctx, code.Code, 100)
	assert.NoError(t, err)
}

func TestRelinkAndUnlinkTelegram(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID, task := f.seedCleaner(t)
	otherUser, _ := f.seedCleaner(t)

	f.linkChat(t, userID, 100)
	f.linkChat(t, userID, 200)

	portal, err := f.schedule.PortalForChat(ctx, 100)
	require.NoError(t, err)
	assert.False(t, portal.Assigned)
	portal, err = f.schedule.PortalForChat(ctx, 200)
	require.NoError(t, err)
	assert.True(t, portal.Assigned)

	// Чат уже привязан к другому уборщику.
	code, err := f.cleaners.IssueLinkCode(ctx, otherUser)
	require.NoError(t, err)
	_, err = f.cleaners.LinkTelegram(ctx, code.Code, 200)
	assert.ErrorIs(t, err, repository.ErrConflict)

	unlinked, err := f.cleaners.UnlinkTelegram(ctx, task.CleanerID)
	require.NoError(t, err)
	assert.Nil(t, unlinked.TelegramChatID)
	portal, err = f.schedule.PortalForChat(ctx, 200)
	require.NoError(t, err)
	assert.False(t, portal.Assigned)

	f.linkChat(t, userID, 300)
	_, err = f.cleaners.UnlinkTelegramForUser(ctx, userID)
	require.NoError(t, err)
	_, err = f.schedule.AdvanceForChat(ctx, 300, task.ID, ActionStart)
	assert.ErrorIs(t, err, ErrForbiddenTransition)

	_, err = f.cleaners.IssueLinkCode(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrForbiddenTransition)
	_, err = f.cleaners.UnlinkTelegram(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPortalAdvanceReturnsHotelName(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID := uuid.NewString()
	f.store.Profiles().Add(model.Profile{UserID: userID, FullName: "Meena"})
	c, err := f.cleaners.Create(ctx, model.Cleaner{UserID: userID, FullName: "Meena"})
	require.NoError(t, err)
	hotel, err := f.store.Hotels().Create(ctx, &model.Hotel{DestinationID: uuid.NewString(), Name: "Ganga View"})
	require.NoError(t, err)
	task, err := f.schedule.Create(ctx, model.CleaningSchedule{
		CleanerID: c.ID, HotelID: hotel.ID, ScheduledDate: model.NewDate(mustDate(t, "2026-11-02")),
	})
	require.NoError(t, err)

	started, err := f.schedule.Advance(ctx, userID, task.ID, ActionStart)
	require.NoError(t, err)
	require.NotNil(t, started.HotelName)
	assert.Equal(t, "Ganga View", *started.HotelName)
}
