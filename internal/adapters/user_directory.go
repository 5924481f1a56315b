package adapters

import (
	"context"
	"fmt"

	ordersvc "seedstore_backend/internal/orders/service"
	reviewsvc "seedstore_backend/internal/reviews/service"
	usersrepo "seedstore_backend/internal/users/repository"
)

// UserDirectory adapts the users repository to the author and owner lookups
// of the orders and reviews domains.
type UserDirectory struct {
	users usersrepo.UserReader
}

// NewUserDirectory creates a new user directory adapter.
func NewUserDirectory(users usersrepo.UserReader) *UserDirectory {
	return &UserDirectory{users: users}
}

// GetUserSummary returns one user's email and name. A missing user keeps the
// repository's NotFound error.
func (a *UserDirectory) GetUserSummary(ctx context.Context, userID int64) (ordersvc.UserSummary, error) {
	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return ordersvc.UserSummary{}, err
	}
	return ordersvc.UserSummary{ID: u.ID, Email: u.Email, FullName: u.FullName}, nil
}

// GetAuthors batch-loads review authors. Unknown IDs are omitted.
func (a *UserDirectory) GetAuthors(ctx context.Context, userIDs []int64) (map[int64]reviewsvc.Author, error) {
	out := make(map[int64]reviewsvc.Author, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	users, err := a.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("user directory: get authors: %w", err)
	}
	for _, u := range users {
		out[u.ID] = reviewsvc.Author{FullName: u.FullName, Email: u.Email}
	}
	return out, nil
}

var (
	_ ordersvc.UserDirectory    = (*UserDirectory)(nil)
	_ reviewsvc.AuthorDirectory = (*UserDirectory)(nil)
)
