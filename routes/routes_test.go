package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharath018/party-rsvp-backend/config"
	"github.com/sharath018/party-rsvp-backend/internal/auditlog"
	"github.com/sharath018/party-rsvp-backend/internal/livefeed"
	"github.com/sharath018/party-rsvp-backend/internal/notification"
	"github.com/sharath018/party-rsvp-backend/internal/party"
	"github.com/sharath018/party-rsvp-backend/internal/reports"
	"github.com/sharath018/party-rsvp-backend/internal/rsvp"
	"github.com/sharath018/party-rsvp-backend/internal/testutil"
	"github.com/sharath018/party-rsvp-backend/middleware"
)

type nopQueue struct{}

func (nopQueue) Name() string                                    { return "memory" }
func (nopQueue) Enqueue(context.Context, notification.Job) error { return nil }
func (nopQueue) Start()                                          {}
func (nopQueue) Stop() error                                     { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t, &party.Party{}, &rsvp.RSVP{}, &auditlog.AuditLog{})
	cfg := &config.Config{
		ServiceName:  "party-rsvp-test",
		CORSOrigins:  []string{"http://localhost:5173"},
		MailProvider: "smtp",
		Party: config.PartyDefaults{
			Title:        "Test Party",
			Date:         time.Date(2030, 1, 1, 19, 0, 0, 0, time.UTC),
			Time:         "7:00 PM",
			Address:      "1 Test Lane",
			MaxGuests:    20,
			RSVPDeadline: time.Date(2029, 12, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	partySvc := party.NewService(party.NewRepository(db), cfg.Party, zerolog.Nop())
	_, _, err := partySvc.EnsureDefault(context.Background())
	require.NoError(t, err)

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	rsvpSvc := rsvp.NewService(rsvp.NewRepository(db), partySvc, nopQueue{}, auditSvc, livefeed.NewPublisher(nil, zerolog.Nop()), zerolog.Nop())

	r := gin.New()
	Setup(r, Deps{
		Config:    cfg,
		Logger:    zerolog.Nop(),
		DB:        db,
		Party:     party.NewHandler(partySvc),
		RSVP:      rsvp.NewHandler(rsvpSvc),
		Reports:   reports.NewHandler(reports.NewService(rsvpSvc, partySvc, reports.NewGuestExporter())),
		Audit:     auditlog.NewHandler(auditSvc),
		LiveFeed:  livefeed.NewHandler(nil, partySvc),
		QueueName: "memory",
	})
	return r
}

func serve(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Birthday Party API is running", body["message"])
	assert.Equal(t, config.Version, body["version"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, false, body["mail_configured"])
	assert.Equal(t, false, body["notification_email_set"])
	assert.Equal(t, "memory", body["queue"])
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", decode(t, w)["error"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/party", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/party", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestPanicBecomes500(t *testing.T) {
	r := newTestRouter(t)
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decode(t, w)["error"])
}

func TestLiveFeedWithoutRedis(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/guests/stream", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRSVPFlowThroughRouter(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodPost, "/api/rsvp", []byte(`{"name":"Ana","email":"ana@x.com","attending":"yes","number_of_guests":3}`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	code := decode(t, w)["confirmation_code"].(string)

	w = serve(r, http.MethodGet, "/api/party/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)
	assert.EqualValues(t, 1, stats["total_rsvps"])
	assert.EqualValues(t, 3, stats["total_attending"])
	assert.EqualValues(t, 17, stats["available_spots"])

	w = serve(r, http.MethodGet, "/api/rsvp/"+code, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/guests/export?format=csv", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), code)

	w = serve(r, http.MethodGet, "/api/audit-logs?action=rsvp_submitted", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, code, logs[0]["confirmation_code"])
}
