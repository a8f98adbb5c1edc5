package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inkwell-api/internal/llm"
	"inkwell-api/internal/service"
)

// PromptHandler expone el asistente de escritura.
type PromptHandler struct {
	logger    *zap.Logger
	assistant *service.WritingAssistant
}

// NewPromptHandler crea una instancia de PromptHandler con dependencias necesarias.
func NewPromptHandler(logger *zap.Logger, assistant *service.WritingAssistant) *PromptHandler {
	return &PromptHandler{
		logger:    logger,
		assistant: assistant,
	}
}

// Prompt maneja POST /prompt.
func (h *PromptHandler) Prompt(c *gin.Context) {
	var req struct {
		Context string `json:"context"`
		Prompt  string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid prompt request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.assistant.Rewrite(c.Request.Context(), req.Context, req.Prompt)
	if err != nil {
		var apiErr *llm.APIError
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		case errors.As(err, &apiErr):
			h.logger.Warn("llm rejected prompt", zap.Int("status", apiErr.StatusCode), zap.String("message", apiErr.Message))
			c.JSON(http.StatusBadRequest, gin.H{"error": apiErr.Message})
		default:
			h.logger.Error("prompt failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate text"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
