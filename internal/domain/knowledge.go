package domain

import "time"

// KnowledgeArticle is a curated knowledge-base entry used by the support
// assistant. Only published articles are considered during scoring.
type KnowledgeArticle struct {
	ID          string
	Title       string
	Category    string
	Content     string
	Keywords    []string
	IsPublished bool
	UpdatedAt   time.Time
}

// NewKnowledgeArticle applies defaults for a fresh article.
func NewKnowledgeArticle(title, category, content string, keywords []string, published bool) *KnowledgeArticle {
	if keywords == nil {
		keywords = []string{}
	}
	return &KnowledgeArticle{
		Title:       title,
		Category:    category,
		Content:     content,
		Keywords:    keywords,
		IsPublished: published,
	}
}

// AboutContent is the single editable about-page document. It doubles as a
// scoring candidate for the support assistant.
type AboutContent struct {
	ID           string
	Title        string
	Body         string
	HeroImageURL *string
	UpdatedAt    time.Time
}
