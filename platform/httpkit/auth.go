package httpkit

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"seedstore_backend/platform/config"
	"seedstore_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Gin context keys set by AuthRequired.
const (
	ContextUserIDKey    = "userID"
	ContextEmailKey     = "email"
	ContextSuperuserKey = "isSuperuser"
)

const (
	errMissingToken = "missing token"
	errInvalidToken = "invalid token"
	errNoEmailClaim = "could not validate credentials: no email in token"
	errInactiveUser = "inactive user"
	errForbidden    = "the user doesn't have enough privileges"
)

// AuthRequired returns middleware that validates bearer tokens issued by the
// external identity provider and resolves the email claim to a local user.
func AuthRequired(cfg config.JWTConfig, resolver IdentityResolver, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, errMissingToken)
			return
		}

		claims, err := parseClaims(rawToken, cfg)
		if err != nil {
			abortUnauthorized(c, errInvalidToken)
			return
		}

		email := extractEmail(claims)
		if email == "" {
			abortUnauthorized(c, errNoEmailClaim)
			return
		}

		principal, err := resolver.ResolvePrincipal(c.Request.Context(), email)
		if err != nil {
			if log != nil {
				log.AuthEvent("resolve_principal", email, false, err.Error())
			}
			HandleError(c, err)
			c.Abort()
			return
		}
		if !principal.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: errInactiveUser})
			return
		}

		c.Set(ContextUserIDKey, principal.UserID)
		c.Set(ContextEmailKey, principal.Email)
		c.Set(ContextSuperuserKey, principal.IsSuperuser)
		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, principal.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireSuperuser returns middleware that only lets superusers through.
// It must run after AuthRequired.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextSuperuserKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: errForbidden})
			return
		}
		c.Next()
	}
}

func extractBearerToken(authHeader string) (string, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	rawToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if rawToken == "" {
		return "", false
	}

	return rawToken, true
}

func parseClaims(rawToken string, cfg config.JWTConfig) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if issuer := cfg.GetJWTIssuer(); issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	parsed, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.GetJWTSecret()), nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, errors.New(errInvalidToken)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New(errInvalidToken)
	}

	return claims, nil
}

func extractEmail(claims jwt.MapClaims) string {
	email, _ := claims["email"].(string)
	return strings.ToLower(strings.TrimSpace(email))
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}
