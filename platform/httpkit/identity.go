package httpkit

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Identity is the caller of an authenticated route: a shopper or an
// administrator.
type Identity interface {
	UserID() int64
	Email() string
	IsSuperuser() bool
}

// Principal is the local user behind a verified token email.
type Principal struct {
	UserID      int64
	Email       string
	IsSuperuser bool
	IsActive    bool
}

// IdentityResolver maps a verified token email onto a local user, creating
// the user on first sight.
type IdentityResolver interface {
	ResolvePrincipal(ctx context.Context, email string) (Principal, error)
}

type identity struct {
	userID    int64
	email     string
	superuser bool
}

func (i identity) UserID() int64     { return i.userID }
func (i identity) Email() string     { return i.email }
func (i identity) IsSuperuser() bool { return i.superuser }

func NewIdentity(userID int64, email string, superuser bool) Identity {
	return identity{userID: userID, email: email, superuser: superuser}
}

// LookupIdentity reads the caller stored by AuthRequired.
func LookupIdentity(c *gin.Context) (Identity, bool) {
	raw, _ := c.Get(ContextUserIDKey)
	uid, ok := raw.(int64)
	if !ok || uid <= 0 {
		return nil, false
	}
	return NewIdentity(uid, c.GetString(ContextEmailKey), c.GetBool(ContextSuperuserKey)), true
}

// MustGetIdentity is LookupIdentity for handlers behind AuthRequired. With no
// caller it answers 401 and returns nil; the handler must return at once.
func MustGetIdentity(c *gin.Context) Identity {
	id, ok := LookupIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return nil
	}
	return id
}
