package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thehatchggs/site-api/internal/api/dto"
	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/service"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

// TicketsHandler serves the public ticket submission endpoint.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets. Accepts both direct contact-form
// submissions and escalated chat drafts carrying a transcript.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	reason := domain.EscalationReason(req.EscalationReason)
	if reason != domain.EscalationNoMatch {
		reason = domain.EscalationUserRequested
	}
	input := service.TicketCreateInput{
		Name:             req.Name,
		Email:            req.Email,
		Subject:          req.Subject,
		Category:         req.Category,
		Message:          req.Message,
		Transcript:       transcriptFromPayload(req.Transcript),
		PrivateInfo:      req.PrivateInfo,
		EscalationReason: reason,
	}
	created, err := h.service.CreateTicket(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateTicketResponse{
		TicketID:       created.Ticket.ID,
		PrivateInfoKey: created.PrivateInfoKey,
	})
}
