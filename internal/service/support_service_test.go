package service

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/events"
	"github.com/thehatchggs/site-api/internal/support"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

type fakeKnowledgeRepo struct {
	articles []domain.KnowledgeArticle
}

func (r *fakeKnowledgeRepo) Create(_ context.Context, article *domain.KnowledgeArticle) error {
	r.articles = append(r.articles, *article)
	return nil
}

func (r *fakeKnowledgeRepo) Update(_ context.Context, _ *domain.KnowledgeArticle) error { return nil }
func (r *fakeKnowledgeRepo) Delete(_ context.Context, _ string) error                   { return nil }

func (r *fakeKnowledgeRepo) GetByID(_ context.Context, _ string) (*domain.KnowledgeArticle, error) {
	return nil, pgx.ErrNoRows
}

func (r *fakeKnowledgeRepo) List(_ context.Context) ([]domain.KnowledgeArticle, error) {
	return r.articles, nil
}

func (r *fakeKnowledgeRepo) ListPublished(_ context.Context) ([]domain.KnowledgeArticle, error) {
	published := []domain.KnowledgeArticle{}
	for _, article := range r.articles {
		if article.IsPublished {
			published = append(published, article)
		}
	}
	return published, nil
}

type fakeAboutRepo struct {
	about *domain.AboutContent
}

func (r *fakeAboutRepo) Get(_ context.Context) (*domain.AboutContent, error) {
	if r.about == nil {
		return nil, pgx.ErrNoRows
	}
	return r.about, nil
}

func (r *fakeAboutRepo) Upsert(_ context.Context, about *domain.AboutContent) error {
	r.about = about
	return nil
}

type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func newSupportServiceForTest(articles []domain.KnowledgeArticle) (*SupportService, *captureDispatcher) {
	dispatcher := &captureDispatcher{}
	svc := NewSupportService(SupportDependencies{
		KnowledgeRepo: &fakeKnowledgeRepo{articles: articles},
		AboutRepo:     &fakeAboutRepo{},
		Dispatcher:    dispatcher,
		Logger:        zap.NewNop(),
	})
	return svc, dispatcher
}

func shippingArticle() domain.KnowledgeArticle {
	return domain.KnowledgeArticle{
		Title:       "Merch orders and shipping",
		Category:    "merch",
		Content:     "Orders usually ship within five business days. If an order has not arrived after two weeks, open a support ticket.",
		Keywords:    []string{"shipping", "order"},
		IsPublished: true,
	}
}

func TestAsk_EmptyMessageRejected(t *testing.T) {
	svc, _ := newSupportServiceForTest(nil)

	_, err := svc.Ask(context.Background(), "   ", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAsk_NoMatchEscalatesWithDraft(t *testing.T) {
	svc, dispatcher := newSupportServiceForTest([]domain.KnowledgeArticle{shippingArticle()})

	transcript := []domain.ChatTurn{
		{Role: domain.ChatRoleUser, Message: "hi"},
		{Role: domain.ChatRoleAgent, Message: "hello, how can I help?"},
	}
	result, err := svc.Ask(context.Background(), "zzzzz qqqqq", transcript)
	require.NoError(t, err)

	assert.True(t, result.Reply.Escalate)
	assert.Equal(t, support.NoMatchAnswer, result.Reply.Answer)
	assert.Equal(t, domain.EscalationNoMatch, result.Reply.Reason)

	// the draft covers the whole transcript plus the triggering message
	assert.Equal(t, "zzzzz qqqqq", result.Draft.Subject)
	lines := strings.Split(result.Draft.Body, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "user: hi", lines[0])
	assert.Equal(t, "user: zzzzz qqqqq", lines[2])

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventSupportEscalated, dispatcher.published[0].Type)
}

func TestAsk_ConfidentMatchAnswersDirectly(t *testing.T) {
	svc, dispatcher := newSupportServiceForTest([]domain.KnowledgeArticle{shippingArticle()})

	result, err := svc.Ask(context.Background(), "when does my shipping order arrive", nil)
	require.NoError(t, err)

	assert.False(t, result.Reply.Escalate)
	assert.True(t, strings.HasPrefix(result.Reply.Answer, "Orders usually ship"))
	assert.Empty(t, dispatcher.published)
}

func TestAsk_UnpublishedArticlesIgnored(t *testing.T) {
	draft := shippingArticle()
	draft.IsPublished = false
	svc, _ := newSupportServiceForTest([]domain.KnowledgeArticle{draft})

	result, err := svc.Ask(context.Background(), "when does my shipping order arrive", nil)
	require.NoError(t, err)

	assert.True(t, result.Reply.Escalate)
	assert.Equal(t, support.NoMatchAnswer, result.Reply.Answer)
}

func TestAsk_AboutDocumentIsACandidate(t *testing.T) {
	dispatcher := &captureDispatcher{}
	aboutRepo := &fakeAboutRepo{about: &domain.AboutContent{
		Title: "About The Hatch",
		Body:  "The Hatch is a community gaming organization running events and streams.",
	}}
	svc := NewSupportService(SupportDependencies{
		KnowledgeRepo: &fakeKnowledgeRepo{},
		AboutRepo:     aboutRepo,
		Dispatcher:    dispatcher,
		Logger:        zap.NewNop(),
	})

	result, err := svc.Ask(context.Background(), "what kind of gaming organization is this", nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Reply.Answer, "The Hatch is a community"))
}
