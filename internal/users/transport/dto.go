package transport

import "time"

// ListRequest pages a user listing.
type ListRequest struct {
	Skip  int `form:"skip" validate:"min=0"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=500"`
}

type UpdateMeRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,notblank,max=200"`
	Theme    *string `json:"theme" validate:"omitempty,theme"`
}

type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,theme"`
}

// ProfileRequest carries the delivery profile. Format checks on phone and
// postal code happen in the service so the messages match the UI's hints.
type ProfileRequest struct {
	Surname    string `json:"surname" validate:"max=200"`
	Phone      string `json:"phone" validate:"required,max=32"`
	Address    string `json:"address" validate:"max=500"`
	City       string `json:"city" validate:"max=200"`
	PostalCode string `json:"postal_code" validate:"required,max=16"`
}

type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	FullName    string `json:"full_name" validate:"max=200"`
	IsSuperuser bool   `json:"is_superuser"`
}

type BlockRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type AddressResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Surname    string    `json:"surname"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UserResponse struct {
	ID          int64             `json:"id"`
	Email       string            `json:"email"`
	FullName    string            `json:"full_name"`
	IsActive    bool              `json:"is_active"`
	IsSuperuser bool              `json:"is_superuser"`
	Theme       string            `json:"theme"`
	Verified    bool              `json:"verified"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Addresses   []AddressResponse `json:"addresses"`
}
