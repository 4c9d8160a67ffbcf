package support

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("How do I reset, my PASSWORD?!")
	assert.Equal(t, []string{"how", "reset", "password"}, tokens)
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	tokens := Tokenize("is it ok to go")
	assert.Empty(t, tokens)
}

func TestRank_NoOverlapReturnsNilBest(t *testing.T) {
	candidates := []Candidate{
		{Title: "Shipping", Content: "We ship worldwide."},
		{Title: "Returns", Content: "Returns accepted within 30 days."},
	}
	scored, best := Rank("quantum entanglement", candidates)
	assert.Nil(t, best)
	require.Len(t, scored, 2)
	for _, sc := range scored {
		assert.Zero(t, sc.Score)
	}
}

func TestRank_SubstringContainmentCountsTokens(t *testing.T) {
	candidates := []Candidate{
		{Title: "Password help", Content: "Use the reset link to change your password."},
	}
	_, best := Rank("reset password", candidates)
	require.NotNil(t, best)
	assert.Equal(t, 2, best.Score)
}

func TestRank_KeywordsJoinHaystack(t *testing.T) {
	candidates := []Candidate{
		{Title: "Orders", Content: "General info.", Keywords: []string{"refund", "invoice"}},
	}
	_, best := Rank("refund", candidates)
	require.NotNil(t, best)
	assert.Equal(t, 1, best.Score)
}

func TestRank_TieGoesToFirstSeen(t *testing.T) {
	candidates := []Candidate{
		{Title: "First", Content: "payments accepted"},
		{Title: "Second", Content: "payments accepted"},
	}
	scored, best := Rank("payments", candidates)
	require.NotNil(t, best)
	assert.Equal(t, "First", best.Title)
	assert.Equal(t, "First", scored[0].Title)
	assert.Equal(t, "Second", scored[1].Title)
}

func TestRank_SortedDescending(t *testing.T) {
	candidates := []Candidate{
		{Title: "Weak", Content: "shipping"},
		{Title: "Strong", Content: "shipping rates and shipping times"},
	}
	scored, best := Rank("shipping rates times", candidates)
	require.NotNil(t, best)
	assert.Equal(t, "Strong", best.Title)
	assert.Equal(t, "Strong", scored[0].Title)
	assert.GreaterOrEqual(t, scored[0].Score, scored[1].Score)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcde…", Truncate("abcdefgh", 5))
	long := strings.Repeat("x", 400)
	got := Truncate(long, 300)
	assert.Len(t, []rune(got), 301)
	assert.True(t, strings.HasSuffix(got, "…"))
}
