package dto

import (
	"time"

	"github.com/thehatchggs/site-api/internal/domain"
)

// ChatTurnPayload is one transcript turn as submitted by the client.
type ChatTurnPayload struct {
	Role    domain.ChatRole `json:"role"`
	Message string          `json:"message"`
}

// CreateTicketRequest payload for the public contact endpoint. Escalated
// chat drafts also carry the transcript and the reason the assistant
// handed off.
type CreateTicketRequest struct {
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Subject          string            `json:"subject"`
	Category         string            `json:"category"`
	Message          string            `json:"message"`
	Transcript       []ChatTurnPayload `json:"transcript"`
	PrivateInfo      string            `json:"privateInfo"`
	EscalationReason string            `json:"escalationReason"`
}

// CreateTicketResponse returns the new ticket id and, when private info
// was supplied, the submitter's reference key.
type CreateTicketResponse struct {
	TicketID       string `json:"ticketId"`
	PrivateInfoKey string `json:"privateInfoKey,omitempty"`
}

// InternalNoteResponse is one admin note on a ticket.
type InternalNoteResponse struct {
	At      time.Time `json:"ts"`
	Note    string    `json:"note"`
	AdminID string    `json:"admin_id"`
}

// TicketSummary is the admin list row. The encrypted field never leaves
// the server; only its presence is reported.
type TicketSummary struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	Subject          string                  `json:"subject"`
	Category         string                  `json:"category"`
	Status           domain.TicketStatus     `json:"status"`
	EscalationReason domain.EscalationReason `json:"escalation_reason"`
	HasPrivateInfo   bool                    `json:"has_private_info"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info for the admin view.
type TicketDetailResponse struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	Subject          string                  `json:"subject"`
	Category         string                  `json:"category"`
	Message          string                  `json:"message"`
	Status           domain.TicketStatus     `json:"status"`
	EscalationReason domain.EscalationReason `json:"escalation_reason"`
	Transcript       []domain.ChatTurn       `json:"transcript"`
	InternalNotes    []InternalNoteResponse  `json:"internal_notes"`
	HasPrivateInfo   bool                    `json:"has_private_info"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// UpdateTicketRequest patches status and/or appends a note.
type UpdateTicketRequest struct {
	Status *domain.TicketStatus `json:"status"`
	Note   *string              `json:"note"`
}

// TicketActionRequest triggers a per-ticket action such as decrypt.
type TicketActionRequest struct {
	Action string `json:"action"`
}

// DecryptResponse carries the on-demand decrypted private info.
type DecryptResponse struct {
	PrivateInfo string `json:"privateInfo"`
}
