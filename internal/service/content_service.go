package service

import (
	"context"
	"strings"

	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/repository"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

// ContentService manages the editable site content: the about document,
// the merchandise catalogue and the knowledge base.
type ContentService struct {
	about     repository.AboutRepository
	merch     repository.MerchRepository
	knowledge repository.KnowledgeRepository
}

// ContentDependencies bundles repositories for the content service.
type ContentDependencies struct {
	AboutRepo     repository.AboutRepository
	MerchRepo     repository.MerchRepository
	KnowledgeRepo repository.KnowledgeRepository
}

// NewContentService constructs the service.
func NewContentService(deps ContentDependencies) *ContentService {
	return &ContentService{
		about:     deps.AboutRepo,
		merch:     deps.MerchRepo,
		knowledge: deps.KnowledgeRepo,
	}
}

// GetAbout returns the about document.
func (s *ContentService) GetAbout(ctx context.Context) (*domain.AboutContent, error) {
	about, err := s.about.Get(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return about, nil
}

// UpsertAbout replaces or creates the single about document.
func (s *ContentService) UpsertAbout(ctx context.Context, title, body string, heroImageURL *string) (*domain.AboutContent, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return nil, apperrors.NewValidationError("title and body are required", nil)
	}
	about := &domain.AboutContent{Title: title, Body: body, HeroImageURL: heroImageURL}
	if err := s.about.Upsert(ctx, about); err != nil {
		return nil, apperrors.MapError(err)
	}
	return about, nil
}

// ListMerch returns the full catalogue for the admin console.
func (s *ContentService) ListMerch(ctx context.Context) ([]domain.MerchItem, error) {
	items, err := s.merch.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// ListVisibleMerch returns the public catalogue, hidden items excluded.
func (s *ContentService) ListVisibleMerch(ctx context.Context) ([]domain.MerchItem, error) {
	items, err := s.merch.ListVisible(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// MerchInput describes a merch create or update payload. Nil pointers on
// update leave the field untouched.
type MerchInput struct {
	Name        *string
	Description *string
	ImageURL    *string
	IsFeatured  *bool
	IsHidden    *bool
}

// CreateMerch adds a catalogue item.
func (s *ContentService) CreateMerch(ctx context.Context, input MerchInput) (*domain.MerchItem, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	item := &domain.MerchItem{Name: *input.Name}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}
	if input.IsFeatured != nil {
		item.IsFeatured = *input.IsFeatured
	}
	if input.IsHidden != nil {
		item.IsHidden = *input.IsHidden
	}
	if err := s.merch.Create(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	return item, nil
}

// UpdateMerch applies a partial update to a catalogue item.
func (s *ContentService) UpdateMerch(ctx context.Context, id string, input MerchInput) (*domain.MerchItem, error) {
	item, err := s.merch.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}
	if input.IsFeatured != nil {
		item.IsFeatured = *input.IsFeatured
	}
	if input.IsHidden != nil {
		item.IsHidden = *input.IsHidden
	}
	if err := s.merch.Update(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	return item, nil
}

// DeleteMerch removes a catalogue item.
func (s *ContentService) DeleteMerch(ctx context.Context, id string) error {
	if err := s.merch.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListKnowledge returns all articles for the admin console.
func (s *ContentService) ListKnowledge(ctx context.Context) ([]domain.KnowledgeArticle, error) {
	articles, err := s.knowledge.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return articles, nil
}

// GetKnowledge fetches one article.
func (s *ContentService) GetKnowledge(ctx context.Context, id string) (*domain.KnowledgeArticle, error) {
	article, err := s.knowledge.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return article, nil
}

// KnowledgeInput describes an article create or update payload.
type KnowledgeInput struct {
	Title       *string
	Category    *string
	Content     *string
	Keywords    []string
	IsPublished *bool
}

// CreateKnowledge adds a knowledge-base article.
func (s *ContentService) CreateKnowledge(ctx context.Context, input KnowledgeInput) (*domain.KnowledgeArticle, error) {
	if input.Title == nil || input.Category == nil || input.Content == nil ||
		strings.TrimSpace(*input.Title) == "" || strings.TrimSpace(*input.Category) == "" || strings.TrimSpace(*input.Content) == "" {
		return nil, apperrors.NewValidationError("title, category and content are required", nil)
	}
	published := false
	if input.IsPublished != nil {
		published = *input.IsPublished
	}
	article := domain.NewKnowledgeArticle(*input.Title, *input.Category, *input.Content, input.Keywords, published)
	if err := s.knowledge.Create(ctx, article); err != nil {
		return nil, apperrors.MapError(err)
	}
	return article, nil
}

// UpdateKnowledge applies a partial update to an article.
func (s *ContentService) UpdateKnowledge(ctx context.Context, id string, input KnowledgeInput) (*domain.KnowledgeArticle, error) {
	article, err := s.knowledge.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Category != nil {
		article.Category = *input.Category
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	if input.Keywords != nil {
		article.Keywords = input.Keywords
	}
	if input.IsPublished != nil {
		article.IsPublished = *input.IsPublished
	}
	if err := s.knowledge.Update(ctx, article); err != nil {
		return nil, apperrors.MapError(err)
	}
	return article, nil
}

// DeleteKnowledge removes an article.
func (s *ContentService) DeleteKnowledge(ctx context.Context, id string) error {
	if err := s.knowledge.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
