package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"campusforms/internal/auth"
)

const claimsKey = "claims"

// AuthGuard requires a valid bearer token whose role is one of allowedRoles
// (any role when none are given) and stores its claims on the context.
func AuthGuard(tokens *auth.Tokens, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			log.Debug().Str("route", "AUTH").Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if len(allowedRoles) > 0 && !slices.Contains(allowedRoles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func AdminAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return AuthGuard(tokens, auth.RoleAdmin)
}

// ClaimsFrom returns the claims stored by AuthGuard or UserAuth.
func ClaimsFrom(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok
}

func bearerToken(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		return "", false
	}
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
