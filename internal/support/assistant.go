package support

import "github.com/thehatchggs/site-api/internal/domain"

const (
	// AnswerLimit caps the content excerpt returned as the direct answer.
	AnswerLimit = 300
	// ExcerptLimit caps the excerpt shown per suggestion.
	ExcerptLimit = 160
	// LowConfidenceScore is the overlap below which the assistant still
	// answers but asks the user whether to open a ticket.
	LowConfidenceScore = 2
	// MaxSuggestions caps the suggestion list length.
	MaxSuggestions = 3
)

const (
	// NoMatchAnswer is returned when no candidate scores above zero.
	NoMatchAnswer = "I'm sorry, I don't have information on that. Would you like to create a support ticket?"
	// LowConfidencePrompt is appended to low-scoring answers.
	LowConfidencePrompt = "\n\nI may not have fully answered your question. Would you like to create a support ticket?"
)

// Suggestion is a ranked match surfaced alongside the answer.
type Suggestion struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// Reply is the assistant's response to one user turn. Escalate signals the
// hand-off from chat to the ticket form.
type Reply struct {
	Answer      string
	Suggestions []Suggestion
	Escalate    bool
	Reason      domain.EscalationReason
}

// Answer runs the relevance scorer over the candidates and applies the
// escalation policy: no match escalates with a fixed message, a best score
// below LowConfidenceScore answers but still escalates, anything else
// answers directly.
func Answer(message string, candidates []Candidate) Reply {
	scored, best := Rank(message, candidates)

	suggestions := make([]Suggestion, 0, MaxSuggestions)
	for _, sc := range scored {
		if sc.Score == 0 || len(suggestions) == MaxSuggestions {
			break
		}
		suggestions = append(suggestions, Suggestion{
			Title:   sc.Title,
			Excerpt: Truncate(sc.Content, ExcerptLimit),
		})
	}

	if best == nil {
		return Reply{
			Answer:      NoMatchAnswer,
			Suggestions: suggestions,
			Escalate:    true,
			Reason:      domain.EscalationNoMatch,
		}
	}

	reply := Reply{
		Answer:      Truncate(best.Content, AnswerLimit),
		Suggestions: suggestions,
		Reason:      domain.EscalationUserRequested,
	}
	if best.Score < LowConfidenceScore {
		reply.Answer += LowConfidencePrompt
		reply.Escalate = true
	}
	return reply
}
