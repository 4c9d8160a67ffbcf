package support

import (
	"strings"

	"github.com/thehatchggs/site-api/internal/domain"
)

// SubjectLimit caps the pre-filled subject length.
const SubjectLimit = 60

// Draft is a pre-filled ticket form produced when a chat escalates.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// DraftTicket pre-fills a ticket from the transcript: the subject is the
// start of the triggering user message, the body the transcript rendered
// one "role: text" line per turn.
func DraftTicket(transcript []domain.ChatTurn) Draft {
	var subject string
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == domain.ChatRoleUser {
			subject = transcript[i].Message
			break
		}
	}
	if runes := []rune(subject); len(runes) > SubjectLimit {
		subject = string(runes[:SubjectLimit])
	}

	lines := make([]string, 0, len(transcript))
	for _, turn := range transcript {
		lines = append(lines, string(turn.Role)+": "+turn.Message)
	}

	return Draft{Subject: subject, Body: strings.Join(lines, "\n")}
}
