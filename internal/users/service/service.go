package service

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"seedstore_backend/internal/events"
	"seedstore_backend/internal/users/repository"
	"seedstore_backend/internal/users/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/config"
	"seedstore_backend/platform/logger"
	"seedstore_backend/platform/phone"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500

	msgInvalidPhone      = "Invalid phone number format. Use format: +375 XX XXX-XX-XX"
	msgInvalidPostalCode = "Invalid postal code format. Use format: XXXXXX"
	msgCannotBlock       = "Cannot block superusers"
	msgNotEnoughRights   = "the user doesn't have enough privileges"
)

var (
	phonePattern      = regexp.MustCompile(`^\+375\s[0-9]{2}\s[0-9]{3}-[0-9]{2}-[0-9]{2}$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// Service provides business logic for users.
type Service struct {
	repo     repository.Repository
	cfg      config.SuperuserConfig
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new users service.
func New(repo repository.Repository, cfg config.SuperuserConfig, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, eventBus: eventBus, log: log}
}

// Me returns the caller's own record.
func (s *Service) Me(ctx context.Context, userID int64) (transport.UserResponse, error) {
	return s.Get(ctx, userID, userID, false)
}

// Get returns a user the caller may see: themselves, or anyone for superusers.
func (s *Service) Get(ctx context.Context, callerID, userID int64, callerIsSuperuser bool) (transport.UserResponse, error) {
	if callerID != userID && !callerIsSuperuser {
		return transport.UserResponse{}, apperr.Forbidden(msgNotEnoughRights)
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return s.withAddress(ctx, u)
}

// UpdateMe changes the caller's name or theme.
func (s *Service) UpdateMe(ctx context.Context, userID int64, req transport.UpdateMeRequest) (transport.UserResponse, error) {
	var fullName *string
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		fullName = &trimmed
	}
	u, err := s.repo.Update(ctx, userID, repository.UpdateUserParams{FullName: fullName, Theme: req.Theme})
	if err != nil {
		return transport.UserResponse{}, err
	}
	return s.withAddress(ctx, u)
}

// SetTheme stores the caller's UI theme.
func (s *Service) SetTheme(ctx context.Context, userID int64, req transport.ThemeRequest) (transport.UserResponse, error) {
	theme := req.Theme
	u, err := s.repo.Update(ctx, userID, repository.UpdateUserParams{Theme: &theme})
	if err != nil {
		return transport.UserResponse{}, err
	}
	return s.withAddress(ctx, u)
}

// UpdateProfile validates and stores the delivery profile. The user becomes
// verified once every field is filled in.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req transport.ProfileRequest) (transport.UserResponse, error) {
	params := repository.ProfileParams{
		Surname:    strings.TrimSpace(req.Surname),
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		PostalCode: strings.TrimSpace(req.PostalCode),
	}

	if !phonePattern.MatchString(params.Phone) || !phone.IsValidForRegion(params.Phone, phone.DefaultRegion) {
		return transport.UserResponse{}, apperr.BadRequest(msgInvalidPhone)
	}
	if !postalCodePattern.MatchString(params.PostalCode) {
		return transport.UserResponse{}, apperr.BadRequest(msgInvalidPostalCode)
	}

	params.Verified = params.Surname != "" && params.Phone != "" && params.Address != "" &&
		params.City != "" && params.PostalCode != ""

	u, err := s.repo.SaveProfile(ctx, userID, params)
	if err != nil {
		return transport.UserResponse{}, err
	}
	s.log.Info("profile updated", "userId", userID, "verified", u.Verified)
	return s.withAddress(ctx, u)
}

// List returns users for administrators.
func (s *Service) List(ctx context.Context, req transport.ListRequest) ([]transport.UserResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	users, err := s.repo.List(ctx, repository.ListParams{Offset: max(req.Skip, 0), Limit: min(limit, maxListLimit)})
	if err != nil {
		return nil, err
	}
	out := make([]transport.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u, nil))
	}
	return out, nil
}

// Create adds a user with a bcrypt-hashed password.
func (s *Service) Create(ctx context.Context, req transport.CreateUserRequest) (transport.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return transport.UserResponse{}, apperr.Conflict("user with this email already exists")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return transport.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return transport.UserResponse{}, apperr.Internal(err)
	}
	hashed := string(hash)

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = localPart(email)
	}

	u, err := s.repo.Create(ctx, repository.CreateUserParams{
		Email:          email,
		HashedPassword: &hashed,
		FullName:       fullName,
		IsSuperuser:    req.IsSuperuser || config.IsSuperuserEmail(s.cfg, email),
	})
	if err != nil {
		return transport.UserResponse{}, err
	}
	s.log.Info("user created", "id", u.ID, "email", u.Email, "superuser", u.IsSuperuser)
	return toUserResponse(u, nil), nil
}

// SetActive blocks or unblocks a user. Superusers cannot be blocked.
func (s *Service) SetActive(ctx context.Context, userID int64, req transport.BlockRequest) (transport.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return transport.UserResponse{}, err
	}
	if u.IsSuperuser {
		return transport.UserResponse{}, apperr.BadRequest(msgCannotBlock)
	}

	u, err = s.repo.SetActive(ctx, userID, *req.IsActive)
	if err != nil {
		return transport.UserResponse{}, err
	}
	s.log.Info("user activity changed", "id", u.ID, "isActive", u.IsActive)
	return toUserResponse(u, nil), nil
}

func (s *Service) withAddress(ctx context.Context, u repository.User) (transport.UserResponse, error) {
	addr, err := s.repo.GetAddress(ctx, u.ID)
	if err != nil {
		return transport.UserResponse{}, err
	}
	return toUserResponse(u, addr), nil
}

func localPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

func toUserResponse(u repository.User, addr *repository.Address) transport.UserResponse {
	resp := transport.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		Theme:       u.Theme,
		Verified:    u.Verified,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		Addresses:   []transport.AddressResponse{},
	}
	if addr != nil {
		resp.Addresses = append(resp.Addresses, transport.AddressResponse{
			ID:         addr.ID,
			UserID:     addr.UserID,
			Surname:    addr.Surname,
			Phone:      addr.Phone,
			Address:    addr.Address,
			City:       addr.City,
			PostalCode: addr.PostalCode,
			CreatedAt:  addr.CreatedAt,
			UpdatedAt:  addr.UpdatedAt,
		})
	}
	return resp
}
