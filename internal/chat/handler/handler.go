package handler

import (
	"github.com/gin-gonic/gin"

	"seedstore_backend/internal/chat/service"
	"seedstore_backend/internal/chat/transport"
	"seedstore_backend/platform/httpkit"
	"seedstore_backend/platform/validator"
)

// Handler handles HTTP requests for chat search and the keyword agent.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new chat handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Search answers a free-text product question.
// POST /api/v1/chat/search
func (h *Handler) Search(c *gin.Context) {
	var req transport.ChatSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Search(c.Request.Context(), *req.Prompt)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AgentSearch runs the keyword search.
// POST /api/v1/ai-agent/search?prompt=
func (h *Handler) AgentSearch(c *gin.Context) {
	var req transport.AgentSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.KeywordSearch(c.Request.Context(), req.Prompt)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AgentRecommend runs the keyword search and keeps the first limit results.
// POST /api/v1/ai-agent/recommend?prompt=&limit=
func (h *Handler) AgentRecommend(c *gin.Context) {
	var req transport.AgentRecommendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}

	limit := service.DefaultRecommendLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	result, err := h.svc.Recommend(c.Request.Context(), req.Prompt, limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
