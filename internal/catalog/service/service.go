package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"seedstore_backend/internal/adapters/storage"
	"seedstore_backend/internal/catalog/repository"
	"seedstore_backend/internal/catalog/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/sanitize"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500

	msgCategoryExists     = "category with this name already exists"
	msgManufacturerExists = "manufacturer with this name already exists"
	msgStorageDisabled    = "image storage is not configured"
)

// Service provides business logic for catalog.
type Service struct {
	repo    repository.Repository
	storage storage.ImageStore
	bucket  string
	log     *logger.Logger
}

// New creates a new catalog service. storageSvc may be nil when image storage
// is not configured.
func New(repo repository.Repository, storageSvc storage.ImageStore, bucket string, log *logger.Logger) *Service {
	return &Service{repo: repo, storage: storageSvc, bucket: bucket, log: log}
}

// ListParams converts skip/limit into repository paging with defaults.
func ListParams(req transport.ListRequest) repository.ListParams {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	skip := req.Skip
	if skip < 0 {
		skip = 0
	}
	return repository.ListParams{Offset: skip, Limit: limit}
}

// =============================================================================
// Categories
// =============================================================================

// ListCategories lists categories.
func (s *Service) ListCategories(ctx context.Context, req transport.ListRequest) ([]transport.CategoryResponse, error) {
	items, err := s.repo.ListCategories(ctx, ListParams(req))
	if err != nil {
		return nil, err
	}
	out := make([]transport.CategoryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCategoryResponse(item))
	}
	return out, nil
}

// GetCategory retrieves a category by ID.
func (s *Service) GetCategory(ctx context.Context, id int64) (transport.CategoryResponse, error) {
	c, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return transport.CategoryResponse{}, err
	}
	return toCategoryResponse(c), nil
}

// CreateCategory creates a category with a unique name.
func (s *Service) CreateCategory(ctx context.Context, req transport.CategoryRequest) (transport.CategoryResponse, error) {
	params := categoryParams(req)
	if err := s.ensureCategoryNameFree(ctx, params.Name, 0); err != nil {
		return transport.CategoryResponse{}, err
	}
	c, err := s.repo.CreateCategory(ctx, params)
	if err != nil {
		return transport.CategoryResponse{}, err
	}
	s.log.Info("category created", "id", c.ID, "name", c.Name)
	return toCategoryResponse(c), nil
}

// UpdateCategory renames or re-describes a category.
func (s *Service) UpdateCategory(ctx context.Context, id int64, req transport.CategoryRequest) (transport.CategoryResponse, error) {
	if _, err := s.repo.GetCategoryByID(ctx, id); err != nil {
		return transport.CategoryResponse{}, err
	}
	params := categoryParams(req)
	if err := s.ensureCategoryNameFree(ctx, params.Name, id); err != nil {
		return transport.CategoryResponse{}, err
	}
	c, err := s.repo.UpdateCategory(ctx, id, params)
	if err != nil {
		return transport.CategoryResponse{}, err
	}
	s.log.Info("category updated", "id", c.ID, "name", c.Name)
	return toCategoryResponse(c), nil
}

// DeleteCategory deletes a category.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.log.Info("category deleted", "id", id)
	return nil
}

func (s *Service) ensureCategoryNameFree(ctx context.Context, name string, excludeID int64) error {
	exists, err := s.repo.CategoryNameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict(msgCategoryExists)
	}
	return nil
}

// =============================================================================
// Manufacturers
// =============================================================================

// ListManufacturers lists manufacturers.
func (s *Service) ListManufacturers(ctx context.Context, req transport.ListRequest) ([]transport.ManufacturerResponse, error) {
	items, err := s.repo.ListManufacturers(ctx, ListParams(req))
	if err != nil {
		return nil, err
	}
	out := make([]transport.ManufacturerResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toManufacturerResponse(item))
	}
	return out, nil
}

// GetManufacturer retrieves a manufacturer by ID.
func (s *Service) GetManufacturer(ctx context.Context, id int64) (transport.ManufacturerResponse, error) {
	m, err := s.repo.GetManufacturerByID(ctx, id)
	if err != nil {
		return transport.ManufacturerResponse{}, err
	}
	return toManufacturerResponse(m), nil
}

// CreateManufacturer creates a manufacturer with a unique name.
func (s *Service) CreateManufacturer(ctx context.Context, req transport.ManufacturerRequest) (transport.ManufacturerResponse, error) {
	params := manufacturerParams(req)
	if err := s.ensureManufacturerNameFree(ctx, params.Name, 0); err != nil {
		return transport.ManufacturerResponse{}, err
	}
	m, err := s.repo.CreateManufacturer(ctx, params)
	if err != nil {
		return transport.ManufacturerResponse{}, err
	}
	s.log.Info("manufacturer created", "id", m.ID, "name", m.Name)
	return toManufacturerResponse(m), nil
}

// UpdateManufacturer replaces a manufacturer's fields.
func (s *Service) UpdateManufacturer(ctx context.Context, id int64, req transport.ManufacturerRequest) (transport.ManufacturerResponse, error) {
	if _, err := s.repo.GetManufacturerByID(ctx, id); err != nil {
		return transport.ManufacturerResponse{}, err
	}
	params := manufacturerParams(req)
	if err := s.ensureManufacturerNameFree(ctx, params.Name, id); err != nil {
		return transport.ManufacturerResponse{}, err
	}
	m, err := s.repo.UpdateManufacturer(ctx, id, params)
	if err != nil {
		return transport.ManufacturerResponse{}, err
	}
	s.log.Info("manufacturer updated", "id", m.ID, "name", m.Name)
	return toManufacturerResponse(m), nil
}

// DeleteManufacturer deletes a manufacturer.
func (s *Service) DeleteManufacturer(ctx context.Context, id int64) error {
	if err := s.repo.DeleteManufacturer(ctx, id); err != nil {
		return err
	}
	s.log.Info("manufacturer deleted", "id", id)
	return nil
}

func (s *Service) ensureManufacturerNameFree(ctx context.Context, name string, excludeID int64) error {
	exists, err := s.repo.ManufacturerNameExists(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflict(msgManufacturerExists)
	}
	return nil
}

// =============================================================================
// Products
// =============================================================================

// ListProducts lists products with their category and manufacturer.
func (s *Service) ListProducts(ctx context.Context, req transport.ListRequest) ([]transport.ProductResponse, error) {
	items, err := s.repo.ListProducts(ctx, ListParams(req))
	if err != nil {
		return nil, err
	}
	out := make([]transport.ProductResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToProductResponse(item))
	}
	return out, nil
}

// GetProduct retrieves a product by ID.
func (s *Service) GetProduct(ctx context.Context, id int64) (transport.ProductResponse, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return ToProductResponse(p), nil
}

// GetProductsByIDs returns the products that exist among ids, for other
// modules that embed or snapshot catalog data.
func (s *Service) GetProductsByIDs(ctx context.Context, ids []int64) ([]transport.ProductResponse, error) {
	items, err := s.repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]transport.ProductResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToProductResponse(item))
	}
	return out, nil
}

// CreateProduct creates a product after checking its references.
func (s *Service) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	if err := s.validateReferences(ctx, req.CategoryID, req.ManufacturerID); err != nil {
		return transport.ProductResponse{}, err
	}

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	p, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		Name:           strings.TrimSpace(req.Name),
		Description:    sanitize.TextPtr(req.Description),
		Price:          *req.Price,
		ImageURL:       trimPtr(req.ImageURL),
		CategoryID:     req.CategoryID,
		ManufacturerID: req.ManufacturerID,
		InStock:        inStock,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product created", "id", p.ID, "name", p.Name)
	return ToProductResponse(p), nil
}

// UpdateProduct applies a partial update.
func (s *Service) UpdateProduct(ctx context.Context, id int64, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	if err := s.validateReferences(ctx, req.CategoryID, req.ManufacturerID); err != nil {
		return transport.ProductResponse{}, err
	}

	p, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:             id,
		Name:           trimPtr(req.Name),
		Description:    sanitize.TextPtr(req.Description),
		Price:          req.Price,
		ImageURL:       trimPtr(req.ImageURL),
		CategoryID:     req.CategoryID,
		ManufacturerID: req.ManufacturerID,
		InStock:        req.InStock,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product updated", "id", p.ID, "name", p.Name)
	return ToProductResponse(p), nil
}

// DeleteProduct deletes a product.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", "id", id)
	return nil
}

// RecalculateAverageRating refreshes a product's cached review average.
func (s *Service) RecalculateAverageRating(ctx context.Context, productID int64) error {
	avg, err := s.repo.RecalculateAverageRating(ctx, productID)
	if err != nil {
		return err
	}
	s.log.Debug("average rating recalculated", "productId", productID, "averageRating", avg)
	return nil
}

// validateReferences turns unknown category or manufacturer IDs into 400s.
func (s *Service) validateReferences(ctx context.Context, categoryID, manufacturerID *int64) error {
	if categoryID != nil {
		if _, err := s.repo.GetCategoryByID(ctx, *categoryID); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.BadRequest(fmt.Sprintf("category %d does not exist", *categoryID))
			}
			return err
		}
	}
	if manufacturerID != nil {
		if _, err := s.repo.GetManufacturerByID(ctx, *manufacturerID); err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return apperr.BadRequest(fmt.Sprintf("manufacturer %d does not exist", *manufacturerID))
			}
			return err
		}
	}
	return nil
}

// =============================================================================
// Product images
// =============================================================================

// PresignProductImage returns a presigned PUT URL for a new product image.
func (s *Service) PresignProductImage(ctx context.Context, productID int64, req transport.PresignImageRequest) (transport.PresignedUploadResponse, error) {
	if s.storage == nil {
		return transport.PresignedUploadResponse{}, apperr.BadRequest(msgStorageDisabled)
	}
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return transport.PresignedUploadResponse{}, err
	}
	if err := storage.ValidateImageContentType(req.ContentType); err != nil {
		return transport.PresignedUploadResponse{}, apperr.Validation(err.Error())
	}

	presigned, err := s.storage.GenerateUploadURL(ctx, s.bucket, productFolder(productID), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidUpload) {
			return transport.PresignedUploadResponse{}, apperr.Validation(err.Error())
		}
		return transport.PresignedUploadResponse{}, err
	}

	return transport.PresignedUploadResponse{
		UploadURL: presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt.Unix(),
	}, nil
}

// AttachProductImage points the product at an uploaded object.
func (s *Service) AttachProductImage(ctx context.Context, productID int64, req transport.AttachImageRequest) (transport.ProductResponse, error) {
	if s.storage == nil {
		return transport.ProductResponse{}, apperr.BadRequest(msgStorageDisabled)
	}
	fileKey := strings.TrimSpace(req.FileKey)
	if !strings.HasPrefix(fileKey, productFolder(productID)+"/") {
		return transport.ProductResponse{}, apperr.BadRequest("file key does not belong to this product")
	}

	exists, err := s.storage.ObjectExists(ctx, s.bucket, fileKey)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	if !exists {
		return transport.ProductResponse{}, apperr.BadRequest("image has not been uploaded")
	}

	current, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return transport.ProductResponse{}, err
	}

	p, err := s.repo.SetProductImage(ctx, productID, s.storage.PublicURL(s.bucket, fileKey))
	if err != nil {
		return transport.ProductResponse{}, err
	}
	s.log.Info("product image attached", "id", p.ID, "fileKey", fileKey)

	if current.ImageURL != nil {
		s.removeReplacedImage(ctx, *current.ImageURL, fileKey)
	}
	return ToProductResponse(p), nil
}

// removeReplacedImage deletes the previous object of a product. Failures only
// leave an orphan in the bucket, so they are logged and swallowed.
func (s *Service) removeReplacedImage(ctx context.Context, oldURL, newKey string) {
	oldKey, ok := storage.KeyFromPublicURL(s.storage, s.bucket, oldURL)
	if !ok || oldKey == newKey {
		return
	}
	if err := s.storage.DeleteObject(ctx, s.bucket, oldKey); err != nil {
		s.log.Warn("failed to remove replaced product image", "fileKey", oldKey, "error", err)
	}
}

func productFolder(productID int64) string {
	return fmt.Sprintf("products/%d", productID)
}

// =============================================================================
// Mapping
// =============================================================================

func categoryParams(req transport.CategoryRequest) repository.CategoryParams {
	return repository.CategoryParams{
		Name:        strings.TrimSpace(req.Name),
		Description: sanitize.TextPtr(req.Description),
	}
}

func manufacturerParams(req transport.ManufacturerRequest) repository.ManufacturerParams {
	return repository.ManufacturerParams{
		Name:    strings.TrimSpace(req.Name),
		Website: trimPtr(req.Website),
		Country: trimPtr(req.Country),
	}
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func toCategoryResponse(c repository.Category) transport.CategoryResponse {
	return transport.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toManufacturerResponse(m repository.Manufacturer) transport.ManufacturerResponse {
	return transport.ManufacturerResponse{
		ID:        m.ID,
		Name:      m.Name,
		Website:   m.Website,
		Country:   m.Country,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToProductResponse maps a product row to its API shape. Cart and order
// responses embed the same shape.
func ToProductResponse(p repository.Product) transport.ProductResponse {
	resp := transport.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		ImageURL:       p.ImageURL,
		CategoryID:     p.CategoryID,
		ManufacturerID: p.ManufacturerID,
		AverageRating:  p.AverageRating,
		InStock:        p.InStock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.Category != nil {
		c := toCategoryResponse(*p.Category)
		resp.Category = &c
	}
	if p.Manufacturer != nil {
		m := toManufacturerResponse(*p.Manufacturer)
		resp.Manufacturer = &m
	}
	return resp
}
