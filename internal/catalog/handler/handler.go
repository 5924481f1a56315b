package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seedstore_backend/internal/catalog/service"
	"seedstore_backend/internal/catalog/transport"
	"seedstore_backend/platform/httpkit"
	"seedstore_backend/platform/validator"
)

// Handler handles HTTP requests for catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid catalog id"
)

// New creates a new catalog handler.
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

func (h *Handler) bindJSON(c *gin.Context, req any) bool {
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

// ListCategories lists categories.
// GET /api/v1/categories
func (h *Handler) ListCategories(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	result, err := h.svc.ListCategories(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetCategory retrieves a category.
// GET /api/v1/categories/:id
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	result, err := h.svc.GetCategory(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateCategory creates a category.
// POST /api/v1/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var req transport.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.CreateCategory(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateCategory updates a category.
// PUT /api/v1/categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	var req transport.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.UpdateCategory(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteCategory deletes a category.
// DELETE /api/v1/categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteCategory(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ListManufacturers lists manufacturers.
// GET /api/v1/manufacturers
func (h *Handler) ListManufacturers(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	result, err := h.svc.ListManufacturers(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetManufacturer retrieves a manufacturer.
// GET /api/v1/manufacturers/:id
func (h *Handler) GetManufacturer(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	result, err := h.svc.GetManufacturer(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateManufacturer creates a manufacturer.
// POST /api/v1/manufacturers
func (h *Handler) CreateManufacturer(c *gin.Context) {
	var req transport.ManufacturerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.CreateManufacturer(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateManufacturer updates a manufacturer.
// PUT /api/v1/manufacturers/:id
func (h *Handler) UpdateManufacturer(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	var req transport.ManufacturerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.UpdateManufacturer(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteManufacturer deletes a manufacturer.
// DELETE /api/v1/manufacturers/:id
func (h *Handler) DeleteManufacturer(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteManufacturer(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ListProducts lists products.
// GET /api/v1/products
func (h *Handler) ListProducts(c *gin.Context) {
	req, ok := h.bindList(c)
	if !ok {
		return
	}
	result, err := h.svc.ListProducts(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetProduct retrieves a product.
// GET /api/v1/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	result, err := h.svc.GetProduct(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateProduct creates a product.
// POST /api/v1/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req transport.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.CreateProduct(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateProduct partially updates a product.
// PUT /api/v1/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	var req transport.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.UpdateProduct(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteProduct deletes a product.
// DELETE /api/v1/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.DeleteProduct(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// PresignProductImage returns a presigned upload URL for a product image.
// POST /api/v1/admin/products/:id/image/presign
func (h *Handler) PresignProductImage(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	var req transport.PresignImageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.PresignProductImage(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// AttachProductImage sets the product image to an uploaded object.
// POST /api/v1/admin/products/:id/image
func (h *Handler) AttachProductImage(c *gin.Context) {
	id, ok := httpkit.ParseID(c, "id", msgInvalidID)
	if !ok {
		return
	}
	var req transport.AttachImageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.svc.AttachProductImage(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
