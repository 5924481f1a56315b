package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"seedstore_backend/internal/orders/repository"
	"seedstore_backend/internal/orders/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/sanitize"
)

const authorLookupConcurrency = 4

// ListComments returns an order's comments enriched with author details.
func (s *Service) ListComments(ctx context.Context, actor Actor, orderID int64) ([]transport.CommentResponse, error) {
	if _, err := s.authorizedOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, orderID)
	if err != nil {
		return nil, err
	}

	authors, err := s.lookupAuthors(ctx, comments)
	if err != nil {
		return nil, err
	}

	out := make([]transport.CommentResponse, 0, len(comments))
	for _, c := range comments {
		resp := toCommentResponse(c)
		if author, ok := authors[c.UserID]; ok {
			resp.UserEmail = &author.Email
			resp.UserFullName = &author.FullName
		}
		out = append(out, resp)
	}
	return out, nil
}

// CreateComment adds a sanitized comment to an order the caller may access.
func (s *Service) CreateComment(ctx context.Context, actor Actor, req transport.CreateCommentRequest) (transport.CommentResponse, error) {
	if _, err := s.authorizedOrder(ctx, actor, req.OrderID); err != nil {
		return transport.CommentResponse{}, err
	}

	text := sanitize.Text(req.Comment)
	if text == "" {
		return transport.CommentResponse{}, apperr.Validation("comment is empty")
	}

	c, err := s.repo.CreateComment(ctx, req.OrderID, actor.UserID, text)
	if err != nil {
		return transport.CommentResponse{}, err
	}
	s.log.Info("order comment created", "id", c.ID, "orderId", c.OrderID, "userId", actor.UserID)

	resp := toCommentResponse(c)
	resp.UserEmail = &actor.Email
	if author, err := s.users.GetUserSummary(ctx, actor.UserID); err == nil {
		resp.UserFullName = &author.FullName
	}
	return resp, nil
}

// lookupAuthors resolves each distinct author concurrently. Authors that no
// longer exist are left out.
func (s *Service) lookupAuthors(ctx context.Context, comments []repository.Comment) (map[int64]UserSummary, error) {
	seen := make(map[int64]struct{})
	var (
		mu      sync.Mutex
		authors = make(map[int64]UserSummary)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(authorLookupConcurrency)
	for _, c := range comments {
		if _, dup := seen[c.UserID]; dup {
			continue
		}
		seen[c.UserID] = struct{}{}

		userID := c.UserID
		g.Go(func() error {
			user, err := s.users.GetUserSummary(gctx, userID)
			if apperr.Is(err, apperr.KindNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			authors[userID] = user
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return authors, nil
}

func toCommentResponse(c repository.Comment) transport.CommentResponse {
	return transport.CommentResponse{
		ID:        c.ID,
		OrderID:   c.OrderID,
		UserID:    c.UserID,
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
