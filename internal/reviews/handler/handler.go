package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seedstore_backend/internal/reviews/service"
	"seedstore_backend/internal/reviews/transport"
	"seedstore_backend/platform/httpkit"
	"seedstore_backend/platform/validator"
)

// Handler handles HTTP requests for reviews.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid review id"
	msgInvalidProductID = "invalid product id"
)

// New creates a new reviews handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) bindList(c *gin.Context) (transport.ListRequest, bool) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return req, false
	}
	return req, true
}

func actorFrom(c *gin.Context) (service.Actor, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return service.Actor{}, false
	}
	return service.Actor{UserID: identity.UserID(), IsSuperuser: identity.IsSuperuser()}, true
}

// List lists all reviews.
// GET /api/v1/reviews
func (h *Handler) List(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListByProduct lists a product's reviews. Public.
// GET /api/v1/reviews/product/:productId
func (h *Handler) ListByProduct(c *gin.Context) {
	productID, ok := httpkit.ParseID(c, "productId", msgInvalidProductID)
	if !ok {
		return
	}
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	result, err := h.svc.ListByProduct(c.Request.Context(), productID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns a review.
// GET /api/v1/reviews/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create adds a review.
// POST /api/v1/reviews
func (h *Handler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req transport.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.Create(c.Request.Context(), actor, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Update changes a review.
// PUT /api/v1/reviews/:id
func (h *Handler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	var req transport.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.Update(c.Request.Context(), actor, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a review.
// DELETE /api/v1/reviews/:id
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), actor, id)) {
		return
	}
	httpkit.NoContent(c)
}
