package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/pkg/auth"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/httputil"
)

const ContextClaims = "claims"

// AuthMiddleware is the identity and authorization guard. It verifies
// the caller's signed claim and, for owner-scoped routes, that the
// claim's subject matches the resource owner in the path. It knows
// nothing about appointment semantics.
type AuthMiddleware struct {
	tokens auth.TokenService
}

func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies the bearer token and the declared role, and sets
// the verified claims in the request context.
func (m *AuthMiddleware) Authenticate(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, errors.Unauthenticated("missing authorization header", nil))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, errors.Unauthenticated("invalid authorization format", nil))
			return
		}

		claims, err := m.tokens.ValidateToken(parts[1])
		if err != nil {
			abort(c, errors.Unauthenticated("invalid token", err))
			return
		}
		if claims.Role != role {
			abort(c, errors.Unauthenticated("token role not permitted for this resource", nil))
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireOwner enforces that the claim subject equals the id in the
// named path parameter. Callers may only act on their own resource.
func (m *AuthMiddleware) RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			abort(c, errors.Unauthenticated("missing identity claims", nil))
			return
		}

		if claims.SubjectID.String() != c.Param(param) {
			abort(c, errors.Forbidden("You may only act on your own resource"))
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims set by Authenticate.
func ClaimsFromContext(c *gin.Context) *model.TokenClaims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*model.TokenClaims); ok {
			return claims
		}
	}
	return nil
}

func abort(c *gin.Context, err error) {
	httputil.RespondWithError(c, err)
	c.Abort()
}
