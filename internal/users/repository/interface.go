package repository

import (
	"context"
	"time"
)

// User is a shopper or administrator.
type User struct {
	ID             int64
	Email          string
	HashedPassword *string
	FullName       string
	IsActive       bool
	IsSuperuser    bool
	Theme          string
	Verified       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Address is a user's delivery profile. A user has at most one.
type Address struct {
	ID         int64
	UserID     int64
	Surname    string
	Phone      string
	Address    string
	City       string
	PostalCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ListParams pages a user listing.
type ListParams struct {
	Offset int
	Limit  int
}

// CreateUserParams contains data for a new user.
type CreateUserParams struct {
	Email          string
	HashedPassword *string
	FullName       string
	IsSuperuser    bool
}

// UpdateUserParams is a partial self-service update.
type UpdateUserParams struct {
	FullName *string
	Theme    *string
}

// ProfileParams replaces the address and sets the verified flag.
type ProfileParams struct {
	Surname    string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Verified   bool
}

// UserReader is the narrow read interface other modules use.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]User, error)
}

// Repository defines user persistence.
type Repository interface {
	UserReader
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, params ListParams) ([]User, error)
	// Create inserts a user and returns Conflict when the email is taken.
	Create(ctx context.Context, params CreateUserParams) (User, error)
	// CreateIfAbsent inserts a user unless the email exists. created reports
	// whether this call inserted the row.
	CreateIfAbsent(ctx context.Context, params CreateUserParams) (user User, created bool, err error)
	SetSuperuser(ctx context.Context, id int64) (User, error)
	Update(ctx context.Context, id int64, params UpdateUserParams) (User, error)
	SetActive(ctx context.Context, id int64, active bool) (User, error)
	// SaveProfile upserts the address and the verified flag atomically.
	SaveProfile(ctx context.Context, userID int64, params ProfileParams) (User, error)
	GetAddress(ctx context.Context, userID int64) (*Address, error)
}
