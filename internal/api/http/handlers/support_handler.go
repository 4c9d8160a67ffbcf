package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/thehatchggs/site-api/internal/api/dto"
	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/service"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

// SupportHandler serves the public support assistant endpoint.
type SupportHandler struct {
	service *service.SupportService
}

// NewSupportHandler constructs handler.
func NewSupportHandler(supportService *service.SupportService) *SupportHandler {
	return &SupportHandler{service: supportService}
}

// Ask POST /api/support/ask.
func (h *SupportHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Ask(c.UserContext(), req.Message, transcriptFromPayload(req.Transcript))
	if err != nil {
		return err
	}

	resp := dto.AskResponse{
		Answer:      result.Reply.Answer,
		Suggestions: result.Reply.Suggestions,
		Escalate:    result.Reply.Escalate,
	}
	if result.Reply.Escalate {
		draft := result.Draft
		resp.Draft = &draft
	}
	return c.JSON(resp)
}

func transcriptFromPayload(turns []dto.ChatTurnPayload) []domain.ChatTurn {
	if len(turns) == 0 {
		return nil
	}
	now := time.Now().UTC()
	transcript := make([]domain.ChatTurn, 0, len(turns))
	for _, turn := range turns {
		transcript = append(transcript, domain.ChatTurn{
			Role:    turn.Role,
			Message: turn.Message,
			At:      now,
		})
	}
	return transcript
}
