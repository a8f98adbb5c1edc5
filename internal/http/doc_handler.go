package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"inkwell-api/internal/domain"
	"inkwell-api/internal/repository"
	"inkwell-api/internal/service"
)

const docNotFound = "Document not found"

// DocHandler mantiene dependencias para endpoints de documentos.
type DocHandler struct {
	logger *zap.Logger
	docs   repository.DocRepository
}

// NewDocHandler crea una instancia de DocHandler con dependencias necesarias.
func NewDocHandler(logger *zap.Logger, docs repository.DocRepository) *DocHandler {
	return &DocHandler{
		logger: logger,
		docs:   docs,
	}
}

type docRequest struct {
	Title       string          `json:"title"`
	ContentText string          `json:"content_text"`
	ContentJSON json.RawMessage `json:"content_json"`
	ContentHTML string          `json:"content_html"`
}

func (r docRequest) input() domain.DocInput {
	return domain.DocInput{
		Title:       r.Title,
		ContentText: r.ContentText,
		ContentJSON: r.ContentJSON,
		ContentHTML: r.ContentHTML,
	}
}

// ListDocs maneja GET /docs. Con ?search= filtra por texto completo.
func (h *DocHandler) ListDocs(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var (
		docs []domain.DocSummary
		err  error
	)
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		docs, err = h.docs.Search(c.Request.Context(), identity.UserID, search)
	} else {
		docs, err = h.docs.List(c.Request.Context(), identity.UserID)
	}
	if err != nil {
		h.logger.Error("list docs failed", zap.Error(err), zap.String("user_id", identity.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"docs": nil, "error": "could not list docs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"docs": docs, "error": nil})
}

// CreateDoc maneja POST /docs.
func (h *DocHandler) CreateDoc(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req docRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create doc request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"doc": nil, "error": "invalid request"})
		return
	}

	now := time.Now().UTC()
	doc := domain.Doc{
		ID:          uuid.NewString(),
		UserID:      identity.UserID,
		Title:       req.Title,
		ContentText: req.ContentText,
		ContentJSON: req.ContentJSON,
		ContentHTML: req.ContentHTML,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.docs.Create(c.Request.Context(), doc); err != nil {
		h.logger.Error("create doc failed", zap.Error(err), zap.String("user_id", identity.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"doc": nil, "error": "could not create doc"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doc": doc, "error": nil})
}

// GetDoc maneja GET /docs/:id.
func (h *DocHandler) GetDoc(c *gin.Context) {
	identity, id, ok := h.docTarget(c)
	if !ok {
		return
	}
	doc, err := h.docs.Get(c.Request.Context(), identity.UserID, id)
	h.respondDoc(c, doc, err, "get doc failed")
}

// UpdateDoc maneja PUT /docs/:id.
func (h *DocHandler) UpdateDoc(c *gin.Context) {
	identity, id, ok := h.docTarget(c)
	if !ok {
		return
	}

	var req docRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update doc request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"doc": nil, "error": "invalid request"})
		return
	}

	doc, err := h.docs.Update(c.Request.Context(), identity.UserID, id, req.input())
	h.respondDoc(c, doc, err, "update doc failed")
}

// DeleteDoc maneja DELETE /docs/:id y devuelve el documento borrado.
func (h *DocHandler) DeleteDoc(c *gin.Context) {
	identity, id, ok := h.docTarget(c)
	if !ok {
		return
	}
	doc, err := h.docs.Delete(c.Request.Context(), identity.UserID, id)
	h.respondDoc(c, doc, err, "delete doc failed")
}

// docTarget resuelve identidad e id. Un id que no es uuid se trata como
// inexistente.
func (h *DocHandler) docTarget(c *gin.Context) (service.Identity, string, bool) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return service.Identity{}, "", false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"doc": nil, "error": docNotFound})
		return service.Identity{}, "", false
	}
	return identity, id.String(), true
}

func (h *DocHandler) respondDoc(c *gin.Context, doc domain.Doc, err error, logMsg string) {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"doc": nil, "error": docNotFound})
			return
		}
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"doc": nil, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doc": doc, "error": nil})
}
