package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/thehatchggs/site-api/internal/api/dto"
	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/service"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

const (
	visitorCookie = "thehatchggs_visitor"
	sessionCookie = "thehatchggs_sid"

	visitorCookieTTL = 365 * 24 * time.Hour
	sessionCookieTTL = 30 * time.Minute
)

// AnalyticsHandler serves the public telemetry ingest endpoint and the
// admin summary report.
type AnalyticsHandler struct {
	service    *service.AnalyticsService
	production bool
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, production bool) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService, production: production}
}

// RecordEvent POST /api/analytics/events. Events missing a type or path
// are rejected with 400; once an event validates the client gets 202 even
// if the write fails.
func (h *AnalyticsHandler) RecordEvent(c *fiber.Ctx) error {
	var req dto.AnalyticsEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	event := &domain.AnalyticsEvent{
		Type:       req.Type,
		Path:       req.Path,
		Referrer:   req.Referrer,
		VisitorID:  h.ensureCookie(c, visitorCookie, visitorCookieTTL),
		SessionID:  h.ensureCookie(c, sessionCookie, sessionCookieTTL),
		DeviceType: service.DetectDeviceType(c.Get(fiber.HeaderUserAgent)),
		Meta:       req.Meta,
	}
	if err := h.service.Record(c.UserContext(), event); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusAccepted)
}

// Summary GET /admin/analytics/summary.
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	rangeDays := 0
	if rangeStr := c.Query("range"); rangeStr != "" {
		parsed, err := strconv.Atoi(rangeStr)
		if err != nil || parsed <= 0 {
			return apperrors.NewValidationError("range must be a positive number of days", nil)
		}
		rangeDays = parsed
	}
	summary, err := h.service.Summary(c.UserContext(), rangeDays)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

func (h *AnalyticsHandler) ensureCookie(c *fiber.Ctx, name string, ttl time.Duration) string {
	if val := c.Cookies(name); val != "" {
		return val
	}
	val := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    val,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return val
}
