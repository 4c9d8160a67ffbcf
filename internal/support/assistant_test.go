package support

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thehatchggs/site-api/internal/domain"
)

func TestAnswer_NoMatchEscalates(t *testing.T) {
	candidates := []Candidate{
		{Title: "Shipping", Content: "We ship worldwide."},
	}
	reply := Answer("quantum entanglement", candidates)

	assert.True(t, reply.Escalate)
	assert.Equal(t, NoMatchAnswer, reply.Answer)
	assert.Equal(t, domain.EscalationNoMatch, reply.Reason)
	assert.Empty(t, reply.Suggestions)
}

func TestAnswer_TwoTokenMatchAnswersDirectly(t *testing.T) {
	body := "You can reset your password from the account page. " + strings.Repeat("More detail. ", 30)
	candidates := []Candidate{
		{Title: "Account", Content: body},
	}
	reply := Answer("reset password", candidates)

	assert.False(t, reply.Escalate)
	assert.Equal(t, Truncate(body, AnswerLimit), reply.Answer)
	assert.LessOrEqual(t, len([]rune(strings.TrimSuffix(reply.Answer, "…"))), AnswerLimit)
}

func TestAnswer_SingleTokenMatchEscalatesWithPrompt(t *testing.T) {
	candidates := []Candidate{
		{Title: "Shipping", Content: "We ship worldwide to most countries."},
	}
	reply := Answer("shipping", candidates)

	assert.True(t, reply.Escalate)
	assert.Contains(t, reply.Answer, "We ship worldwide")
	assert.True(t, strings.HasSuffix(reply.Answer, LowConfidencePrompt))
	assert.Equal(t, domain.EscalationUserRequested, reply.Reason)
}

func TestAnswer_SuggestionsCappedSortedNonZero(t *testing.T) {
	candidates := []Candidate{
		{Title: "A", Content: "merch store hours"},
		{Title: "B", Content: "merch store hours open"},
		{Title: "C", Content: "merch"},
		{Title: "D", Content: "store"},
		{Title: "E", Content: "nothing relevant"},
	}
	reply := Answer("merch store hours open", candidates)

	require.Len(t, reply.Suggestions, 3)
	assert.Equal(t, "B", reply.Suggestions[0].Title)
	assert.Equal(t, "A", reply.Suggestions[1].Title)
	for _, s := range reply.Suggestions {
		assert.NotEqual(t, "E", s.Title)
	}
}

func TestAnswer_SuggestionExcerptTruncated(t *testing.T) {
	candidates := []Candidate{
		{Title: "Long", Content: "shipping " + strings.Repeat("y", 400)},
	}
	reply := Answer("shipping", candidates)

	require.Len(t, reply.Suggestions, 1)
	assert.Len(t, []rune(reply.Suggestions[0].Excerpt), ExcerptLimit+1)
	assert.True(t, strings.HasSuffix(reply.Suggestions[0].Excerpt, "…"))
}

func TestDraftTicket(t *testing.T) {
	transcript := []domain.ChatTurn{
		{Role: domain.ChatRoleUser, Message: "Where is my order?", At: time.Now()},
		{Role: domain.ChatRoleAgent, Message: "Let me check.", At: time.Now()},
		{Role: domain.ChatRoleUser, Message: "It has been two weeks since I placed the order and nothing arrived yet at all", At: time.Now()},
	}
	draft := DraftTicket(transcript)

	assert.Len(t, []rune(draft.Subject), SubjectLimit)
	assert.True(t, strings.HasPrefix("It has been two weeks since I placed the order and nothing arrived yet at all", draft.Subject))
	assert.Equal(t,
		"user: Where is my order?\nagent: Let me check.\nuser: It has been two weeks since I placed the order and nothing arrived yet at all",
		draft.Body)
}

func TestDraftTicket_EmptyTranscript(t *testing.T) {
	draft := DraftTicket(nil)
	assert.Empty(t, draft.Subject)
	assert.Empty(t, draft.Body)
}
