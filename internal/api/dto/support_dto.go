package dto

import "github.com/thehatchggs/site-api/internal/support"

// AskRequest is one support-chat turn.
type AskRequest struct {
	Message    string            `json:"message"`
	Transcript []ChatTurnPayload `json:"transcript"`
}

// AskResponse is the assistant reply. Draft is only present when the
// conversation escalates to the ticket form.
type AskResponse struct {
	Answer      string               `json:"answer"`
	Suggestions []support.Suggestion `json:"suggestions"`
	Escalate    bool                 `json:"escalate"`
	Draft       *support.Draft       `json:"draft,omitempty"`
}
