package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/events"
	"github.com/thehatchggs/site-api/internal/repository"
	"github.com/thehatchggs/site-api/internal/support"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

// SupportService answers support-chat turns from published knowledge
// content and decides when the conversation escalates to a ticket.
type SupportService struct {
	knowledge  repository.KnowledgeRepository
	about      repository.AboutRepository
	analytics  *AnalyticsService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// SupportDependencies bundles collaborators for the support service.
type SupportDependencies struct {
	KnowledgeRepo repository.KnowledgeRepository
	AboutRepo     repository.AboutRepository
	Analytics     *AnalyticsService
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// AskResult carries the assistant reply plus the pre-filled ticket draft
// the client shows when escalation triggers.
type AskResult struct {
	Reply support.Reply
	Draft support.Draft
}

// NewSupportService constructs the service.
func NewSupportService(deps SupportDependencies) *SupportService {
	return &SupportService{
		knowledge:  deps.KnowledgeRepo,
		about:      deps.AboutRepo,
		analytics:  deps.Analytics,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Ask scores the message against published knowledge-base articles and
// the about document, and signals escalation per the assistant policy.
func (s *SupportService) Ask(ctx context.Context, message string, transcript []domain.ChatTurn) (*AskResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}

	candidates, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	reply := support.Answer(message, candidates)

	result := &AskResult{Reply: reply}
	if reply.Escalate {
		full := append(append([]domain.ChatTurn{}, transcript...), domain.ChatTurn{
			Role:    domain.ChatRoleUser,
			Message: message,
			At:      time.Now(),
		})
		result.Draft = support.DraftTicket(full)
		s.publishEscalated(ctx, reply)
	}

	if s.analytics != nil {
		s.analytics.RecordBestEffort(ctx, &domain.AnalyticsEvent{
			Type: domain.EventTypeSupportAsk,
			Path: "/contact",
			Meta: map[string]any{"matches": len(reply.Suggestions)},
		})
	}

	return result, nil
}

func (s *SupportService) loadCandidates(ctx context.Context) ([]support.Candidate, error) {
	articles, err := s.knowledge.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]support.Candidate, 0, len(articles)+1)
	for _, article := range articles {
		candidates = append(candidates, support.Candidate{
			Title:    article.Title,
			Content:  article.Content,
			Keywords: article.Keywords,
			Source:   "kb",
		})
	}

	about, err := s.about.Get(ctx)
	if err == nil {
		candidates = append(candidates, support.Candidate{
			Title:   about.Title,
			Content: about.Body,
			Source:  "about",
		})
	}
	// a missing about document is not an error; the site may not have one yet

	return candidates, nil
}

func (s *SupportService) publishEscalated(ctx context.Context, reply support.Reply) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSupportEscalated,
		Timestamp: time.Now(),
		Payload: events.SupportEscalatedPayload{
			Reason: reply.Reason,
		},
	})
	if err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(events.EventSupportEscalated)), zap.Error(err))
	}
}
