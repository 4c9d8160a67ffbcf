package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/thehatchggs/site-api/internal/api/dto"
	"github.com/thehatchggs/site-api/internal/auth"
	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/service"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

// AdminTicketsHandler manages the admin console ticket endpoints.
type AdminTicketsHandler struct {
	service *service.TicketService
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(ticketService *service.TicketService) *AdminTicketsHandler {
	return &AdminTicketsHandler{service: ticketService}
}

// ListTickets GET /admin/tickets.
func (h *AdminTicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := service.TicketListFilter{}
	if statusStr := strings.TrimSpace(c.Query("status")); statusStr != "" {
		status := domain.TicketStatus(statusStr)
		if !domain.ValidTicketStatus(status) {
			return apperrors.NewValidationError("unknown status", map[string]any{"status": statusStr})
		}
		filter.Status = &status
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = &search
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	tickets, err := h.service.ListTickets(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /admin/tickets/:id.
func (h *AdminTicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// UpdateTicket PATCH /admin/tickets/:id. Accepts a status change and/or an
// appended internal note in one request.
func (h *AdminTicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("admin required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == nil && req.Note == nil {
		return apperrors.NewValidationError("status or note required", nil)
	}

	var ticket *domain.Ticket
	var err error
	if req.Status != nil {
		ticket, err = h.service.UpdateStatus(c.UserContext(), principal.User.ID, c.Params("id"), *req.Status)
		if err != nil {
			return err
		}
	}
	if req.Note != nil {
		ticket, err = h.service.AddNote(c.UserContext(), principal.User.ID, c.Params("id"), *req.Note)
		if err != nil {
			return err
		}
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// TicketAction POST /admin/tickets/:id/actions. The only action today is
// decrypt, which returns the private field plaintext without persisting it.
func (h *AdminTicketsHandler) TicketAction(c *fiber.Ctx) error {
	var req dto.TicketActionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	switch req.Action {
	case "decrypt":
		plaintext, err := h.service.DecryptPrivateInfo(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(dto.DecryptResponse{PrivateInfo: plaintext})
	default:
		return apperrors.NewValidationError("unknown action", map[string]any{"action": req.Action})
	}
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:               ticket.ID,
		Name:             ticket.Name,
		Email:            ticket.Email,
		Subject:          ticket.Subject,
		Category:         ticket.Category,
		Status:           ticket.Status,
		EscalationReason: ticket.EscalationReason,
		HasPrivateInfo:   ticket.PrivateInfo != nil,
		CreatedAt:        ticket.CreatedAt,
		UpdatedAt:        ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetailResponse {
	notes := make([]dto.InternalNoteResponse, 0, len(ticket.InternalNotes))
	for _, note := range ticket.InternalNotes {
		notes = append(notes, dto.InternalNoteResponse{
			At:      note.At,
			Note:    note.Note,
			AdminID: note.AdminID,
		})
	}
	return dto.TicketDetailResponse{
		ID:               ticket.ID,
		Name:             ticket.Name,
		Email:            ticket.Email,
		Subject:          ticket.Subject,
		Category:         ticket.Category,
		Message:          ticket.Message,
		Status:           ticket.Status,
		EscalationReason: ticket.EscalationReason,
		Transcript:       ticket.Transcript,
		InternalNotes:    notes,
		HasPrivateInfo:   ticket.PrivateInfo != nil,
		CreatedAt:        ticket.CreatedAt,
		UpdatedAt:        ticket.UpdatedAt,
	}
}
