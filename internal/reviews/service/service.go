package service

import (
	"context"

	"seedstore_backend/internal/events"
	"seedstore_backend/internal/reviews/repository"
	"seedstore_backend/internal/reviews/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/sanitize"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Actor is the authenticated caller.
type Actor struct {
	UserID      int64
	IsSuperuser bool
}

// Author is the public identity shown next to a review.
type Author struct {
	FullName string
	Email    string
}

// ProductChecker reports whether a catalog product exists.
type ProductChecker interface {
	ProductExists(ctx context.Context, productID int64) (bool, error)
}

// AuthorDirectory resolves review authors in one batch. Unknown IDs are
// omitted from the result.
type AuthorDirectory interface {
	GetAuthors(ctx context.Context, userIDs []int64) (map[int64]Author, error)
}

// Service provides business logic for product reviews.
type Service struct {
	repo     repository.Repository
	products ProductChecker
	authors  AuthorDirectory
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new reviews service.
func New(repo repository.Repository, products ProductChecker, authors AuthorDirectory, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, products: products, authors: authors, eventBus: eventBus, log: log}
}

// List returns all reviews.
func (s *Service) List(ctx context.Context, req transport.ListRequest) ([]transport.ReviewResponse, error) {
	reviews, err := s.repo.List(ctx, listParams(req))
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, reviews)
}

// ListByProduct returns a product's reviews.
func (s *Service) ListByProduct(ctx context.Context, productID int64, req transport.ListRequest) ([]transport.ReviewResponse, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID, listParams(req))
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, reviews)
}

// Get returns one review.
func (s *Service) Get(ctx context.Context, id int64) (transport.ReviewResponse, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ReviewResponse{}, err
	}
	return s.enrichOne(ctx, review)
}

// Create adds a review to an existing product and refreshes its rating.
func (s *Service) Create(ctx context.Context, actor Actor, req transport.CreateReviewRequest) (transport.ReviewResponse, error) {
	exists, err := s.products.ProductExists(ctx, req.ProductID)
	if err != nil {
		return transport.ReviewResponse{}, err
	}
	if !exists {
		return transport.ReviewResponse{}, apperr.NotFound("product not found")
	}

	review, err := s.repo.Create(ctx, repository.CreateParams{
		ProductID: req.ProductID,
		UserID:    actor.UserID,
		Rating:    req.Rating,
		Comment:   sanitize.TextPtr(req.Comment),
	})
	if err != nil {
		return transport.ReviewResponse{}, err
	}

	s.log.Info("review created", "id", review.ID, "productId", review.ProductID, "rating", review.Rating)
	s.publishChange(ctx, review, "created")
	return s.enrichOne(ctx, review)
}

// Update changes a review owned by the caller, or any review for superusers.
func (s *Service) Update(ctx context.Context, actor Actor, id int64, req transport.UpdateReviewRequest) (transport.ReviewResponse, error) {
	if _, err := s.authorizedReview(ctx, actor, id); err != nil {
		return transport.ReviewResponse{}, err
	}

	review, err := s.repo.Update(ctx, id, repository.UpdateParams{
		Rating:  req.Rating,
		Comment: sanitize.TextPtr(req.Comment),
	})
	if err != nil {
		return transport.ReviewResponse{}, err
	}

	s.log.Info("review updated", "id", review.ID, "productId", review.ProductID)
	s.publishChange(ctx, review, "updated")
	return s.enrichOne(ctx, review)
}

// Delete removes a review owned by the caller, or any review for superusers.
func (s *Service) Delete(ctx context.Context, actor Actor, id int64) error {
	review, err := s.authorizedReview(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("review deleted", "id", id, "productId", review.ProductID)
	s.publishChange(ctx, review, "deleted")
	return nil
}

// publishChange runs rating recalculation before the request returns, so the
// product read right after a review write already reflects it. The review
// write is already committed at this point; a failed recalculation is logged
// and repaired by the next change to the product's reviews.
func (s *Service) publishChange(ctx context.Context, review repository.Review, action string) {
	err := s.eventBus.PublishSync(ctx, events.ReviewChanged{
		BaseEvent: events.NewBaseEvent(),
		ReviewID:  review.ID,
		ProductID: review.ProductID,
		Action:    action,
	})
	if err != nil {
		s.log.Error("rating recalculation failed", "reviewId", review.ID, "productId", review.ProductID, "action", action, "error", err)
	}
}

func (s *Service) authorizedReview(ctx context.Context, actor Actor, id int64) (repository.Review, error) {
	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repository.Review{}, err
	}
	if review.UserID != actor.UserID && !actor.IsSuperuser {
		return repository.Review{}, apperr.Forbidden("not enough permissions")
	}
	return review, nil
}

func (s *Service) enrichOne(ctx context.Context, review repository.Review) (transport.ReviewResponse, error) {
	out, err := s.enrich(ctx, []repository.Review{review})
	if err != nil {
		return transport.ReviewResponse{}, err
	}
	return out[0], nil
}

func (s *Service) enrich(ctx context.Context, reviews []repository.Review) ([]transport.ReviewResponse, error) {
	ids := make([]int64, 0, len(reviews))
	seen := make(map[int64]struct{}, len(reviews))
	for _, r := range reviews {
		if _, ok := seen[r.UserID]; !ok {
			seen[r.UserID] = struct{}{}
			ids = append(ids, r.UserID)
		}
	}

	authors := map[int64]Author{}
	if len(ids) > 0 {
		var err error
		if authors, err = s.authors.GetAuthors(ctx, ids); err != nil {
			return nil, err
		}
	}

	out := make([]transport.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp := transport.ReviewResponse{
			ID:        r.ID,
			ProductID: r.ProductID,
			UserID:    r.UserID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
		if a, ok := authors[r.UserID]; ok {
			resp.UserName = &a.FullName
			resp.UserEmail = &a.Email
		}
		out = append(out, resp)
	}
	return out, nil
}

func listParams(req transport.ListRequest) repository.ListParams {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	return repository.ListParams{Offset: max(req.Skip, 0), Limit: min(limit, maxListLimit)}
}
