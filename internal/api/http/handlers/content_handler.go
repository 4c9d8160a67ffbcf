package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/thehatchggs/site-api/internal/api/dto"
	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/service"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

// ContentHandler serves public site content and the admin editing
// endpoints for the about page, merch catalogue and knowledge base.
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler constructs handler.
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{service: contentService}
}

// GetAbout GET /api/about.
func (h *ContentHandler) GetAbout(c *fiber.Ctx) error {
	about, err := h.service.GetAbout(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAboutResponse(about)})
}

// UpsertAbout PUT /admin/about.
func (h *ContentHandler) UpsertAbout(c *fiber.Ctx) error {
	var req dto.AboutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return apperrors.NewValidationError("title and body required", nil)
	}
	about, err := h.service.UpsertAbout(c.UserContext(), req.Title, req.Body, req.HeroImageURL)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAboutResponse(about)})
}

// ListMerch GET /api/merch. Hidden items are excluded.
func (h *ContentHandler) ListMerch(c *fiber.Ctx) error {
	items, err := h.service.ListVisibleMerch(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": merchResponses(items)})
}

// AdminListMerch GET /admin/merch. Includes hidden items.
func (h *ContentHandler) AdminListMerch(c *fiber.Ctx) error {
	items, err := h.service.ListMerch(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": merchResponses(items)})
}

// CreateMerch POST /admin/merch.
func (h *ContentHandler) CreateMerch(c *fiber.Ctx) error {
	var req dto.MerchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	item, err := h.service.CreateMerch(c.UserContext(), merchInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewMerchResponse(item)})
}

// UpdateMerch PATCH /admin/merch/:id.
func (h *ContentHandler) UpdateMerch(c *fiber.Ctx) error {
	var req dto.MerchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	item, err := h.service.UpdateMerch(c.UserContext(), c.Params("id"), merchInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMerchResponse(item)})
}

// DeleteMerch DELETE /admin/merch/:id.
func (h *ContentHandler) DeleteMerch(c *fiber.Ctx) error {
	if err := h.service.DeleteMerch(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListKnowledge GET /admin/knowledge.
func (h *ContentHandler) ListKnowledge(c *fiber.Ctx) error {
	articles, err := h.service.ListKnowledge(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.KnowledgeResponse, 0, len(articles))
	for i := range articles {
		items = append(items, dto.NewKnowledgeResponse(&articles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetKnowledge GET /admin/knowledge/:id.
func (h *ContentHandler) GetKnowledge(c *fiber.Ctx) error {
	article, err := h.service.GetKnowledge(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewKnowledgeResponse(article)})
}

// CreateKnowledge POST /admin/knowledge.
func (h *ContentHandler) CreateKnowledge(c *fiber.Ctx) error {
	var req dto.KnowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	article, err := h.service.CreateKnowledge(c.UserContext(), knowledgeInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewKnowledgeResponse(article)})
}

// UpdateKnowledge PATCH /admin/knowledge/:id.
func (h *ContentHandler) UpdateKnowledge(c *fiber.Ctx) error {
	var req dto.KnowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	article, err := h.service.UpdateKnowledge(c.UserContext(), c.Params("id"), knowledgeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewKnowledgeResponse(article)})
}

// DeleteKnowledge DELETE /admin/knowledge/:id.
func (h *ContentHandler) DeleteKnowledge(c *fiber.Ctx) error {
	if err := h.service.DeleteKnowledge(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func merchInput(req dto.MerchRequest) service.MerchInput {
	return service.MerchInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
		IsHidden:    req.IsHidden,
	}
}

func knowledgeInput(req dto.KnowledgeRequest) service.KnowledgeInput {
	return service.KnowledgeInput{
		Title:       req.Title,
		Category:    req.Category,
		Content:     req.Content,
		Keywords:    req.Keywords,
		IsPublished: req.IsPublished,
	}
}

func merchResponses(items []domain.MerchItem) []dto.MerchResponse {
	resp := make([]dto.MerchResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewMerchResponse(&items[i]))
	}
	return resp
}
