package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vandra-service/internal/domain/entity"
	domainrepo "vandra-service/internal/domain/repository"
	"vandra-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

func TestAirportRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormAirportRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, []entity.Airport{
		{Code: "SLC", Name: "Salt Lake", City: "Salt Lake City", Country: "USA", Timezone: "America/Denver"},
		{Code: "NRT", Name: "Narita", City: "Tokyo", Country: "Japan", Timezone: "Asia/Tokyo"},
	}))
	// second upsert refreshes in place
	require.NoError(t, repo.Upsert(ctx, []entity.Airport{
		{Code: "SLC", Name: "Salt Lake City International Airport", City: "Salt Lake City", Country: "USA", Timezone: "America/Denver"},
	}))

	slc, err := repo.GetByCode(ctx, "SLC")
	require.NoError(t, err)
	assert.Equal(t, "Salt Lake City International Airport", slc.Name)

	ok, err := repo.Exists(ctx, "NRT")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "XXX")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByCode(ctx, "XXX")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(newTestDB(t))

	user := &entity.User{Name: "Ada", Email: " Ada@Example.com ", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)

	err := repo.Create(ctx, &entity.User{Name: "Other", Email: "ada@example.com"})
	assert.ErrorIs(t, err, entity.ErrUserExists)

	got, err := repo.GetByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestAlertRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	airports := NewGormAirportRepository(db)
	users := NewGormUserRepository(db)
	alerts := NewGormAlertRepository(db)

	require.NoError(t, airports.Upsert(ctx, []entity.Airport{{Code: "SLC", Name: "Salt Lake", City: "Salt Lake City"}}))
	user := &entity.User{Name: "Ada", Email: "ada@example.com", Phone: "15550001111", PhoneVerified: true}
	require.NoError(t, users.Create(ctx, user))

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := &entity.FlightAlert{UserID: user.ID, OriginCode: "SLC", DestinationText: "japan", CreatedAt: base.Add(time.Hour)}
	older := &entity.FlightAlert{UserID: user.ID, OriginCode: "SLC", MaxPrice: ptr(700.0), TimingText: "spring", CreatedAt: base}
	paused := &entity.FlightAlert{UserID: user.ID, OriginCode: "SLC", Status: entity.AlertStatusPaused, CreatedAt: base.Add(-time.Hour)}
	for _, a := range []*entity.FlightAlert{newer, older, paused} {
		require.NoError(t, alerts.Create(ctx, a))
	}
	assert.Equal(t, entity.AlertStatusActive, newer.Status)

	ids, err := alerts.ListActiveIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{older.ID, newer.ID}, ids)

	got, err := alerts.GetByID(ctx, older.ID)
	require.NoError(t, err)
	require.NotNil(t, got.MaxPrice)
	assert.Equal(t, 700.0, *got.MaxPrice)
	assert.Equal(t, "spring", got.TimingText)
	assert.Empty(t, got.DestinationCode)
	require.NotNil(t, got.Origin)
	assert.Equal(t, "Salt Lake City", got.Origin.City)
	require.NotNil(t, got.User)
	assert.True(t, got.User.PhoneVerified)

	mine, err := alerts.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	_, err = alerts.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPriceHistoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPriceHistoryRepository(newTestDB(t))

	travel := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	recorded := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	obs := []entity.PriceHistory{
		{Origin: "SLC", Destination: "NRT", TravelDate: travel, Price: 600, Airline: "DL", RecordedAt: recorded},
		{Origin: "SLC", Destination: "NRT", TravelDate: travel.AddDate(0, 0, 3), Price: 650, Airline: "DL", RecordedAt: recorded},
		{Origin: "SLC", Destination: "NRT", TravelDate: travel.AddDate(0, 0, -3), Price: 700, Airline: "UA", RecordedAt: recorded},
		// outside the travel window
		{Origin: "SLC", Destination: "NRT", TravelDate: travel.AddDate(0, 0, 10), Price: 100, Airline: "UA", RecordedAt: recorded},
		// other route
		{Origin: "SLC", Destination: "HND", TravelDate: travel, Price: 100, Airline: "UA", RecordedAt: recorded},
	}

	n, err := repo.RecordMany(ctx, obs)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	// identical observations are skipped, not errors
	n, err = repo.RecordMany(ctx, obs[:2])
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	stats, err := repo.Stats(ctx, domainrepo.PriceQuery{
		Origin:        "SLC",
		Destination:   "NRT",
		TravelFrom:    travel.AddDate(0, 0, -7),
		TravelTo:      travel.AddDate(0, 0, 7),
		RecordedSince: recorded.AddDate(0, 0, -30),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Count)
	assert.InDelta(t, 650.0, stats.Average, 0.001)

	stats, err = repo.Stats(ctx, domainrepo.PriceQuery{
		Origin:        "SLC",
		Destination:   "NRT",
		TravelFrom:    travel.AddDate(0, 0, -7),
		TravelTo:      travel.AddDate(0, 0, 7),
		RecordedSince: recorded.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Count)
	assert.Equal(t, 0.0, stats.Average)

	n, err = repo.RecordMany(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNotificationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormNotificationRepository(newTestDB(t))

	snap := entity.FlightSnapshot{ID: "1", Price: 420, Currency: "USD", Origin: "SLC", Destination: "NRT", DiscountPercent: 35, AveragePrice: 650}
	n := &entity.FlightNotification{AlertID: "alert-1", Flight: snap, Channel: entity.ChannelEmail, Status: entity.NotificationSent}
	require.NoError(t, repo.Create(ctx, n))
	assert.NotEmpty(t, n.ID)

	got, err := repo.ListByAlert(ctx, "alert-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, snap, got[0].Flight)
	assert.Equal(t, entity.ChannelEmail, got[0].Channel)
	assert.Equal(t, entity.NotificationSent, got[0].Status)
}

func TestWhatsappRepositorySend(t *testing.T) {
	var received entity.SendWhatsappMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/send-message", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"taskId":"t-1","status":"queued"}}`))
	}))
	defer srv.Close()

	sender := NewWhatsappRepository(WhatsappConfig{BaseURL: srv.URL + "/", BearerToken: "secret", CompanyID: "c", AgentID: "a"}, logger.NewNopLogger())
	assert.Equal(t, entity.ChannelSMS, sender.Channel())

	err := sender.Send(context.Background(), entity.DealMessage{AlertID: "a1", Recipient: "15550001111", Text: "deal!"})
	require.NoError(t, err)
	assert.Equal(t, "15550001111", received.PhoneNumber)
	assert.Equal(t, "deal!", received.Message.Text)
	assert.Equal(t, "text", received.Type)

	err = sender.Send(context.Background(), entity.DealMessage{Text: "deal!"})
	assert.Error(t, err)
}

func TestWhatsappRepositoryRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":{"message":"bad phone","code":"INVALID_PHONE"}}`))
	}))
	defer srv.Close()

	sender := NewWhatsappRepository(WhatsappConfig{BaseURL: srv.URL}, logger.NewNopLogger())
	err := sender.Send(context.Background(), entity.DealMessage{Recipient: "1", Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_PHONE")
}
