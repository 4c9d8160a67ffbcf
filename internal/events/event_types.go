package events

import (
	"time"

	"github.com/thehatchggs/site-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketNoteAdded     EventType = "ticket_note_added"
	EventSupportEscalated    EventType = "support_escalated"
)

// Actor identifies who triggered an event. AdminID is empty for
// visitor-initiated events such as ticket creation.
type Actor struct {
	AdminID string `json:"admin_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Subject          string                  `json:"subject"`
	Category         string                  `json:"category"`
	EscalationReason domain.EscalationReason `json:"escalation_reason"`
	HasPrivateInfo   bool                    `json:"has_private_info"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketNoteAddedPayload payload.
type TicketNoteAddedPayload struct {
	NotePreview string `json:"note_preview"`
}

// SupportEscalatedPayload payload.
type SupportEscalatedPayload struct {
	Reason domain.EscalationReason `json:"reason"`
}
