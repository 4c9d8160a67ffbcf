package http

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thehatchggs/site-api/internal/api/dto"
	"github.com/thehatchggs/site-api/internal/api/http/handlers"
	"github.com/thehatchggs/site-api/internal/auth"
	"github.com/thehatchggs/site-api/internal/config"
	"github.com/thehatchggs/site-api/internal/crypto"
	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/observability"
	"github.com/thehatchggs/site-api/internal/repository"
	"github.com/thehatchggs/site-api/internal/service"
)

type memTicketRepo struct {
	tickets map[string]*domain.Ticket
	nextID  int
}

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = "t-" + strconv.Itoa(r.nextID)
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *memTicketRepo) ListWithFilter(_ context.Context, _ repository.TicketFilter) ([]domain.Ticket, error) {
	out := []domain.Ticket{}
	for _, ticket := range r.tickets {
		out = append(out, *ticket)
	}
	return out, nil
}

func (r *memTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) error {
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	return nil
}

func (r *memTicketRepo) AppendNote(_ context.Context, id string, note domain.InternalNote) error {
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.InternalNotes = append(ticket.InternalNotes, note)
	return nil
}

type memAdminRepo struct {
	admins map[string]*domain.AdminUser
}

func (r *memAdminRepo) Create(_ context.Context, user *domain.AdminUser) error {
	user.ID = "a-" + strconv.Itoa(len(r.admins)+1)
	r.admins[user.ID] = user
	return nil
}

func (r *memAdminRepo) GetByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	for _, admin := range r.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memAdminRepo) GetByID(_ context.Context, id string) (*domain.AdminUser, error) {
	admin, ok := r.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return admin, nil
}

func (r *memAdminRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.admins)), nil
}

type memAnalyticsRepo struct {
	events []domain.AnalyticsEvent
}

func (r *memAnalyticsRepo) Insert(_ context.Context, event *domain.AnalyticsEvent) error {
	r.events = append(r.events, *event)
	return nil
}

func (r *memAnalyticsRepo) CountByTypeSince(_ context.Context, _ string, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *memAnalyticsRepo) DistinctVisitorsSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *memAnalyticsRepo) DistinctSessionsSince(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type testEnv struct {
	app      *fiber.App
	sessions *auth.SessionCodec
	admins   *memAdminRepo
	events   *memAnalyticsRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	cipher, err := crypto.NewFieldCipher(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)

	secret := make([]byte, 32)
	_, err = rand.Read(secret)
	require.NoError(t, err)
	sessions, err := auth.NewSessionCodec(base64.StdEncoding.EncodeToString(secret), time.Hour)
	require.NoError(t, err)

	ticketRepo := &memTicketRepo{tickets: map[string]*domain.Ticket{}}
	adminRepo := &memAdminRepo{admins: map[string]*domain.AdminUser{}}
	analyticsRepo := &memAnalyticsRepo{}

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Cipher:     cipher,
		Logger:     logger,
	})

	tokens := auth.NewTokenManager("test-jwt-secret", 15)
	adminMiddleware := auth.NewAdminMiddleware(sessions, tokens, "thehatchggs_session", adminRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Health:          handlers.NewHealthHandler("test", "dev", nil, nil),
		Metrics:         handlers.NewMetricsHandler(metrics),
		Tickets:         handlers.NewTicketsHandler(ticketService),
		AdminTickets:    handlers.NewAdminTicketsHandler(ticketService),
		Analytics:       handlers.NewAnalyticsHandler(service.NewAnalyticsService(analyticsRepo, logger), false),
		AdminMiddleware: adminMiddleware,
		RateLimiter:     NewRateLimiter(nil, config.RateLimitConfig{}, logger),
	})

	return &testEnv{app: app, sessions: sessions, admins: adminRepo, events: analyticsRepo}
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any, mutate func(*http.Request)) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestCreateTicketEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := postJSON(t, env.app, "/api/tickets", dto.CreateTicketRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Subject:  "Order never arrived",
		Category: "merch",
		Message:  "Three weeks and counting.",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.CreateTicketResponse
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.TicketID)
	assert.Empty(t, body.PrivateInfoKey)
}

func TestCreateTicketEndpoint_PrivateInfoReturnsKey(t *testing.T) {
	env := newTestEnv(t)

	resp := postJSON(t, env.app, "/api/tickets", dto.CreateTicketRequest{
		Name:        "Alex",
		Email:       "alex@example.com",
		Subject:     "Report",
		Category:    "support",
		Message:     "Details attached privately.",
		PrivateInfo: "secret123",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.CreateTicketResponse
	decodeBody(t, resp, &body)
	assert.Len(t, body.PrivateInfoKey, 8)
}

func TestCreateTicketEndpoint_ValidationEnvelope(t *testing.T) {
	env := newTestEnv(t)

	resp := postJSON(t, env.app, "/api/tickets", dto.CreateTicketRequest{Name: "Alex"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Contains(t, body.Error.Details, "email")
}

func TestAnalyticsEventEndpoint_MissingTypeRejected(t *testing.T) {
	env := newTestEnv(t)

	resp := postJSON(t, env.app, "/api/analytics/events", dto.AnalyticsEventRequest{Path: "/merch"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Empty(t, env.events.events)
}

func TestAnalyticsEventEndpoint_Accepted(t *testing.T) {
	env := newTestEnv(t)

	resp := postJSON(t, env.app, "/api/analytics/events", dto.AnalyticsEventRequest{
		Type: "pageview",
		Path: "/merch",
	}, nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.Len(t, env.events.events, 1)
	assert.Equal(t, "pageview", env.events.events[0].Type)
	assert.NotEmpty(t, env.events.events[0].VisitorID)
}

func TestAdminMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := postJSON(t, env.app, "/api/analytics/events", dto.AnalyticsEventRequest{
		Type: "pageview",
		Path: "/",
	}, nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	admin := &domain.AdminUser{Email: "admin@example.com"}
	require.NoError(t, env.admins.Create(context.Background(), admin))
	cookie, err := env.sessions.Seal(domain.SessionUser{ID: admin.ID, Email: admin.Email, IsAdmin: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/metrics", nil)
	req.AddCookie(&http.Cookie{Name: "thehatchggs_session", Value: cookie})
	metricsResp, err := env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, metricsResp.StatusCode)

	var body struct {
		Data struct {
			Requests map[string]int64 `json:"requests"`
			Errors   map[string]int64 `json:"errors"`
		} `json:"data"`
	}
	decodeBody(t, metricsResp, &body)
	assert.Equal(t, int64(1), body.Data.Requests["/api/analytics/events|POST|202"])
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/tickets", nil)
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutesAcceptSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	admin := &domain.AdminUser{Email: "admin@example.com"}
	require.NoError(t, env.admins.Create(context.Background(), admin))

	cookie, err := env.sessions.Seal(domain.SessionUser{ID: admin.ID, Email: admin.Email, IsAdmin: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/tickets", nil)
	req.AddCookie(&http.Cookie{Name: "thehatchggs_session", Value: cookie})
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
