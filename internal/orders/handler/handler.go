package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seedstore_backend/internal/orders/service"
	"seedstore_backend/internal/orders/transport"
	"seedstore_backend/platform/httpkit"
	"seedstore_backend/platform/validator"
)

// Handler handles HTTP requests for orders and order comments.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid order id"
)

// New creates a new orders handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func actorFrom(c *gin.Context) (service.Actor, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID:      identity.UserID(),
		Email:       identity.Email(),
		IsSuperuser: identity.IsSuperuser(),
	}, true
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.BadRequest(c, msgInvalidRequest, err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.BadRequest(c, msgValidationFailed, err.Error())
		return false
	}
	return true
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

// List lists orders visible to the caller.
// GET /api/v1/orders
func (h *Handler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	result, err := h.svc.List(c.Request.Context(), actor, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create places an order.
// POST /api/v1/orders
func (h *Handler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req transport.CreateOrderRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.Create(c.Request.Context(), actor, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Get returns an order.
// GET /api/v1/orders/:id
func (h *Handler) Get(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	result, err := h.svc.Get(c.Request.Context(), actor, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update changes an order's status as its owner or a superuser.
// PUT /api/v1/orders/:id
func (h *Handler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	var req transport.UpdateOrderRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.Update(c.Request.Context(), actor, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes an order.
// DELETE /api/v1/orders/:id
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

// AdminList lists all orders.
// GET /api/v1/admin/orders
func (h *Handler) AdminList(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	result, err := h.svc.ListAll(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AdminUpdateStatus moves an order to a new status.
// PUT /api/v1/admin/orders/:id
func (h *Handler) AdminUpdateStatus(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	var req transport.UpdateStatusRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListComments lists an order's comments.
// GET /api/v1/order-comments/order/:orderId
func (h *Handler) ListComments(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	orderID, ok := httpkit.ParseID(c, "orderId", msgInvalidID)
	if !ok {
		return
	}
	result, err := h.svc.ListComments(c.Request.Context(), actor, orderID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateComment adds a comment to an order.
// POST /api/v1/order-comments
func (h *Handler) CreateComment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	var req transport.CreateCommentRequest
	if !h.bind(c, &req) {
		return
	}
	result, err := h.svc.CreateComment(c.Request.Context(), actor, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}
