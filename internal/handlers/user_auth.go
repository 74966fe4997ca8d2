package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusforms/internal/apperrors"
	"campusforms/internal/auth"
	"campusforms/internal/middleware"
	"campusforms/internal/store"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// Login checks a user's password. tokens may be nil, in which case no access
// token is returned.
func Login(users UserStore, tokens *auth.Tokens) gin.HandlerFunc {
	const route = "LOGIN"
	return func(c *gin.Context) {
		var req LoginRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err)
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, route, apperrors.NotFound("User not found"))
			return
		}
		if err != nil {
			respondWithError(c, route, apperrors.Internal("Login failed", err))
			return
		}

		if !auth.CheckPassword(user.Password, req.Password) {
			respondWithError(c, route, apperrors.Unauthorized("Invalid password"))
			return
		}

		body := gin.H{"message": "Login successful", "user": user}
		if tokens != nil {
			token, err := tokens.Issue(user.ID.Hex(), user.Email, auth.RoleUser)
			if err != nil {
				respondWithError(c, route, apperrors.Internal("Login failed", err))
				return
			}
			body["token"] = token
		}

		log.Info().Str("route", route).Str("email", user.Email).Msg("user login succeeded")
		c.JSON(http.StatusOK, body)
	}
}

/*
PUT /forgot-password
- Knowing the email is enough to reset the password
*/
func ForgotPassword(users UserStore) gin.HandlerFunc {
	const route = "FORGOT_PASSWORD"
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err)
			return
		}
		if req.NewPassword == "" {
			respondWithError(c, route, apperrors.Validation("validation failed", "newPassword is required"))
			return
		}

		ctx := c.Request.Context()
		user, err := users.FindByEmail(ctx, strings.TrimSpace(req.Email))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, route, apperrors.NotFound("User not found"))
			return
		}
		if err != nil {
			respondWithError(c, route, apperrors.Internal("Password update failed", err))
			return
		}

		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			respondWithError(c, route, apperrors.Internal("Password update failed", err))
			return
		}
		if err := users.UpdatePassword(ctx, user.ID, hash); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(c, route, apperrors.NotFound("User not found"))
				return
			}
			respondWithError(c, route, apperrors.Internal("Password update failed", err))
			return
		}

		log.Info().Str("route", route).Str("email", user.Email).Msg("password reset")
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}

// GetMe returns the user behind the bearer token. Must run after middleware.UserAuth.
func GetMe(users UserStore) gin.HandlerFunc {
	const route = "ME"
	return func(c *gin.Context) {
		userID, ok := c.MustGet(middleware.UserIDKey).(primitive.ObjectID)
		if !ok {
			respondWithError(c, route, apperrors.Unauthorized("unauthorized"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, route, apperrors.NotFound("User not found"))
			return
		}
		if err != nil {
			respondWithError(c, route, apperrors.Internal("db error", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
