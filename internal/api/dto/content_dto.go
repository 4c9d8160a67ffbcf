package dto

import (
	"time"

	"github.com/thehatchggs/site-api/internal/domain"
)

// AboutRequest upserts the about document.
type AboutRequest struct {
	Title        string  `json:"title"`
	Body         string  `json:"body"`
	HeroImageURL *string `json:"heroImageUrl"`
}

// AboutResponse is the about document.
type AboutResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	HeroImageURL *string   `json:"heroImageUrl"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MerchRequest creates or partially updates a catalogue item.
type MerchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	IsFeatured  *bool   `json:"isFeatured"`
	IsHidden    *bool   `json:"isHidden"`
}

// MerchResponse is one catalogue item.
type MerchResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	IsFeatured  bool      `json:"isFeatured"`
	IsHidden    bool      `json:"isHidden"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// KnowledgeRequest creates or partially updates an article.
type KnowledgeRequest struct {
	Title       *string  `json:"title"`
	Category    *string  `json:"category"`
	Content     *string  `json:"content"`
	Keywords    []string `json:"keywords"`
	IsPublished *bool    `json:"isPublished"`
}

// KnowledgeResponse is one knowledge-base article.
type KnowledgeResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Content     string    `json:"content"`
	Keywords    []string  `json:"keywords"`
	IsPublished bool      `json:"isPublished"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewAboutResponse maps the domain document.
func NewAboutResponse(about *domain.AboutContent) AboutResponse {
	return AboutResponse{
		ID:           about.ID,
		Title:        about.Title,
		Body:         about.Body,
		HeroImageURL: about.HeroImageURL,
		UpdatedAt:    about.UpdatedAt,
	}
}

// NewMerchResponse maps a domain item.
func NewMerchResponse(item *domain.MerchItem) MerchResponse {
	return MerchResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		IsFeatured:  item.IsFeatured,
		IsHidden:    item.IsHidden,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// NewKnowledgeResponse maps a domain article.
func NewKnowledgeResponse(article *domain.KnowledgeArticle) KnowledgeResponse {
	return KnowledgeResponse{
		ID:          article.ID,
		Title:       article.Title,
		Category:    article.Category,
		Content:     article.Content,
		Keywords:    article.Keywords,
		IsPublished: article.IsPublished,
		UpdatedAt:   article.UpdatedAt,
	}
}
