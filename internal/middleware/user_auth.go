package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusforms/internal/auth"
)

const UserIDKey = "userId"

// UserAuth validates user tokens and injects the user's ObjectID as userId.
func UserAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			log.Debug().Str("route", "AUTH").Msg("missing token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil || claims.Role != auth.RoleUser {
			log.Debug().Str("route", "AUTH").Err(err).Msg("user token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			log.Debug().Str("route", "AUTH").Msg("invalid userId claim")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(claimsKey, claims)
		c.Set(UserIDKey, userID)
		c.Next()
	}
}
