package service

import (
	"context"
	"strings"

	"seedstore_backend/internal/events"
	"seedstore_backend/internal/users/repository"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/config"
	"seedstore_backend/platform/httpkit"
)

// ResolvePrincipal maps a verified token email to a local user. Unknown
// emails are provisioned with the email's local part as full name, and
// emails listed in SUPERUSER_EMAILS are created or promoted as superusers.
func (s *Service) ResolvePrincipal(ctx context.Context, email string) (httpkit.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return httpkit.Principal{}, apperr.Unauthorized("token has no email")
	}
	superuser := config.IsSuperuserEmail(s.cfg, email)

	u, err := s.repo.GetByEmail(ctx, email)
	switch {
	case apperr.Is(err, apperr.KindNotFound):
		u, err = s.provision(ctx, email, superuser)
		if err != nil {
			return httpkit.Principal{}, err
		}
	case err != nil:
		return httpkit.Principal{}, err
	case superuser && !u.IsSuperuser:
		u, err = s.repo.SetSuperuser(ctx, u.ID)
		if err != nil {
			return httpkit.Principal{}, err
		}
		s.log.Info("user promoted to superuser", "id", u.ID, "email", u.Email)
	}

	return httpkit.Principal{
		UserID:      u.ID,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
	}, nil
}

func (s *Service) provision(ctx context.Context, email string, superuser bool) (repository.User, error) {
	u, created, err := s.repo.CreateIfAbsent(ctx, repository.CreateUserParams{
		Email:       email,
		FullName:    localPart(email),
		IsSuperuser: superuser,
	})
	if err != nil {
		return repository.User{}, err
	}
	if !created {
		return u, nil
	}

	s.log.Info("user provisioned", "id", u.ID, "email", u.Email, "superuser", u.IsSuperuser)
	s.eventBus.Publish(ctx, events.UserProvisioned{
		BaseEvent:   events.NewBaseEvent(),
		UserID:      u.ID,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
	})
	return u, nil
}

var _ httpkit.IdentityResolver = (*Service)(nil)
