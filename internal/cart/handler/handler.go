package handler

import (
	"github.com/gin-gonic/gin"

	"seedstore_backend/internal/cart/service"
	"seedstore_backend/internal/cart/transport"
	"seedstore_backend/platform/httpkit"
	"seedstore_backend/platform/validator"
)

// Handler handles HTTP requests for the cart.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid cart item id"
)

// New creates a new cart handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetCart returns the current user's cart.
// GET /api/v1/cart
func (h *Handler) GetCart(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	result, err := h.svc.GetCart(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AddItem adds a product to the cart.
// POST /api/v1/cart
func (h *Handler) AddItem(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	var req transport.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.AddItem(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateItem changes an item's quantity.
// PUT /api/v1/cart/:id
func (h *Handler) UpdateItem(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	var req transport.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return
	}
	result, err := h.svc.UpdateItem(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RemoveItem deletes an item from the cart.
// DELETE /api/v1/cart/item/:id
func (h *Handler) RemoveItem(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.RemoveItem(c.Request.Context(), identity.UserID(), id)) {
		return
	}
	httpkit.Success(c)
}

// Clear empties the cart.
// DELETE /api/v1/cart/clear
func (h *Handler) Clear(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	if httpkit.HandleError(c, h.svc.Clear(c.Request.Context(), identity.UserID())) {
		return
	}
	httpkit.Success(c)
}
