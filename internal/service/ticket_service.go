package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thehatchggs/site-api/internal/crypto"
	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/events"
	"github.com/thehatchggs/site-api/internal/repository"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows: creation from the contact
// form or an escalated chat, admin triage and decrypt-on-demand.
type TicketService struct {
	tickets    repository.TicketRepository
	cipher     *crypto.FieldCipher
	analytics  *AnalyticsService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Cipher     *crypto.FieldCipher
	Analytics  *AnalyticsService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes a ticket submission.
type TicketCreateInput struct {
	Name             string
	Email            string
	Subject          string
	Category         string
	Message          string
	Transcript       []domain.ChatTurn
	PrivateInfo      string
	EscalationReason domain.EscalationReason
}

// TicketListFilter describes admin listing filters.
type TicketListFilter struct {
	Status *domain.TicketStatus
	Search *string
	Limit  int
}

// CreatedTicket is the creation result: the persisted ticket plus the
// short reference key handed to the submitter when private info was
// supplied. The key is never derivable from the stored record alone.
type CreatedTicket struct {
	Ticket         *domain.Ticket
	PrivateInfoKey string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		cipher:     deps.Cipher,
		analytics:  deps.Analytics,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateTicket validates and persists a new ticket. Private info, when
// present, is encrypted before it ever reaches the repository; the
// plaintext is not retained.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*CreatedTicket, error) {
	missing := map[string]any{}
	for field, value := range map[string]string{
		"name":     input.Name,
		"email":    input.Email,
		"subject":  input.Subject,
		"category": input.Category,
		"message":  input.Message,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}

	ticket := domain.NewTicket(
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Email),
		strings.TrimSpace(input.Subject),
		strings.TrimSpace(input.Category),
		input.Message,
	)
	if input.EscalationReason != "" {
		ticket.EscalationReason = input.EscalationReason
	}

	now := time.Now()
	for _, turn := range input.Transcript {
		at := turn.At
		if at.IsZero() {
			at = now
		}
		ticket.Transcript = append(ticket.Transcript, domain.ChatTurn{
			Role:    turn.Role,
			Message: turn.Message,
			At:      at,
		})
	}

	var privateInfoKey string
	if strings.TrimSpace(input.PrivateInfo) != "" {
		encrypted, err := s.cipher.Encrypt(input.PrivateInfo)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		privateInfoKey = generateReferenceKey()
		ticket.PrivateInfo = &encrypted
		ticket.PrivateInfoKey = &privateInfoKey
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Subject:          ticket.Subject,
			Category:         ticket.Category,
			EscalationReason: ticket.EscalationReason,
			HasPrivateInfo:   ticket.PrivateInfo != nil,
		},
	})
	s.recordCreationAnalytics(ctx, ticket)

	return &CreatedTicket{Ticket: ticket, PrivateInfoKey: privateInfoKey}, nil
}

// ListTickets returns tickets matching the admin filter.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Status: filter.Status,
		Search: filter.Search,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket fetches a single ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// UpdateStatus sets the ticket status. Only the three enumerated values
// are accepted; anything else is rejected without touching the record.
func (s *TicketService) UpdateStatus(ctx context.Context, adminID, ticketID string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.ValidTicketStatus(status) {
		return nil, apperrors.NewValidationError("invalid ticket status", map[string]any{"status": status})
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	oldStatus := ticket.Status

	if err := s.tickets.UpdateStatus(ctx, ticketID, status); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket.Status = status

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    events.Actor{AdminID: adminID},
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return ticket, nil
}

// AddNote appends a timestamped internal note attributed to the admin.
// Notes are append-only; there is no edit or delete path.
func (s *TicketService) AddNote(ctx context.Context, adminID, ticketID, note string) (*domain.Ticket, error) {
	if strings.TrimSpace(note) == "" {
		return nil, apperrors.NewValidationError("note text required", nil)
	}

	entry := domain.InternalNote{
		At:      time.Now(),
		Note:    note,
		AdminID: adminID,
	}
	if err := s.tickets.AppendNote(ctx, ticketID, entry); err != nil {
		return nil, apperrors.MapError(err)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketNoteAdded,
		TicketID: ticketID,
		Actor:    events.Actor{AdminID: adminID},
		Payload: events.TicketNoteAddedPayload{
			NotePreview: notePreview(note, 120),
		},
	})
	return ticket, nil
}

// DecryptPrivateInfo decrypts the ticket's private field on demand. The
// plaintext is returned to the caller and never cached or persisted.
func (s *TicketService) DecryptPrivateInfo(ctx context.Context, ticketID string) (string, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	if ticket.PrivateInfo == nil {
		return "", apperrors.NewNotFound("private info", map[string]any{"ticket_id": ticketID})
	}

	plaintext, err := s.cipher.Decrypt(*ticket.PrivateInfo)
	if err != nil {
		if errors.Is(err, crypto.ErrDecryptionFailed) {
			s.logger.Error("private info integrity failure", zap.String("ticket_id", ticketID))
			return "", apperrors.NewIntegrityError(err)
		}
		return "", apperrors.NewInternalError(err)
	}
	return plaintext, nil
}

func (s *TicketService) recordCreationAnalytics(ctx context.Context, ticket *domain.Ticket) {
	if s.analytics == nil {
		return
	}
	meta := map[string]any{"ticketId": ticket.ID}
	s.analytics.RecordBestEffort(ctx, &domain.AnalyticsEvent{
		Type: domain.EventTypeTicketCreated,
		Path: "/contact",
		Meta: meta,
	})
	s.analytics.RecordBestEffort(ctx, &domain.AnalyticsEvent{
		Type: domain.EventTypeBotToTicket,
		Path: "/contact",
		Meta: meta,
	})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

// generateReferenceKey returns eight lowercase hex characters the
// submitter can quote back in support correspondence.
func generateReferenceKey() string {
	return uuid.NewString()[:8]
}

func notePreview(note string, max int) string {
	note = strings.TrimSpace(note)
	if len(note) <= max {
		return note
	}
	if max <= 3 {
		return note[:max]
	}
	return note[:max-3] + "..."
}
