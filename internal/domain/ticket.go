package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen    TicketStatus = "Open"
	TicketStatusPending TicketStatus = "Pending"
	TicketStatusClosed  TicketStatus = "Closed"
)

// ValidTicketStatus reports whether the value is one of the three allowed states.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusPending, TicketStatusClosed:
		return true
	}
	return false
}

// EscalationReason records why a chat session became a ticket.
type EscalationReason string

const (
	EscalationUserRequested EscalationReason = "user_requested"
	EscalationNoMatch       EscalationReason = "no_match"
)

// ChatRole identifies the author of a transcript turn.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleAgent ChatRole = "agent"
)

// ChatTurn is a single utterance in a support chat transcript.
type ChatTurn struct {
	Role    ChatRole  `json:"role"`
	Message string    `json:"message"`
	At      time.Time `json:"ts"`
}

// InternalNote is an admin-only annotation on a ticket. Notes are append-only.
type InternalNote struct {
	At      time.Time `json:"ts"`
	Note    string    `json:"note"`
	AdminID string    `json:"admin_id"`
}

// EncryptedField carries an AES-GCM sealed value as base64 text. The
// authentication tag is stored separately from the ciphertext so tampering
// with either is detectable at decrypt time.
type EncryptedField struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	AuthTag    string `json:"authTag"`
}

// Ticket is the aggregate for escalated support requests and direct
// contact-form submissions. A ticket carries an EncryptedField exactly when
// the submitter supplied non-empty private info at creation time.
type Ticket struct {
	ID               string
	Name             string
	Email            string
	Subject          string
	Category         string
	Message          string
	Status           TicketStatus
	EscalationReason EscalationReason
	Transcript       []ChatTurn
	InternalNotes    []InternalNote
	PrivateInfoKey   *string
	PrivateInfo      *EncryptedField
	AssignedTo       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewTicket builds a ticket with defaults applied at construction time.
func NewTicket(name, email, subject, category, message string) *Ticket {
	return &Ticket{
		Name:             name,
		Email:            email,
		Subject:          subject,
		Category:         category,
		Message:          message,
		Status:           TicketStatusOpen,
		EscalationReason: EscalationUserRequested,
		Transcript:       []ChatTurn{},
		InternalNotes:    []InternalNote{},
	}
}
