package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"campusforms/internal/apperrors"
	"campusforms/internal/auth"
	"campusforms/internal/models"
	"campusforms/internal/store"
)

const (
	msgAdminExists       = "Admin already registered"
	msgAdminBadLogin     = "Invalid email or password"
	msgAdminSignupFailed = "Admin signup failed"
)

type AdminSignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validate runs before any store access.
func (r AdminSignupRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" || r.ConfirmPassword == "" {
		return apperrors.Validation("All fields are required")
	}
	if r.Password != r.ConfirmPassword {
		return apperrors.Validation("Passwords do not match")
	}
	return nil
}

/*
POST /signup_admin
*/
func SignupAdmin(admins AdminStore) gin.HandlerFunc {
	const route = "SIGNUP_ADMIN"
	return func(c *gin.Context) {
		var req AdminSignupRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err)
			return
		}
		if err := req.validate(); err != nil {
			respondWithError(c, route, err)
			return
		}

		ctx := c.Request.Context()
		email := normalizeEmail(req.Email)

		_, err := admins.FindByEmail(ctx, email)
		switch {
		case err == nil:
			respondWithError(c, route, apperrors.Conflict(msgAdminExists))
			return
		case !errors.Is(err, store.ErrNotFound):
			respondWithError(c, route, apperrors.Internal(msgAdminSignupFailed, err))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondWithError(c, route, apperrors.Internal(msgAdminSignupFailed, err))
			return
		}

		admin := &models.Admin{
			AdminID:  auth.NewAdminID(),
			Name:     strings.TrimSpace(req.Name),
			Email:    email,
			Password: hash,
		}
		if err := admins.Insert(ctx, admin); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				respondWithError(c, route, apperrors.Conflict(msgAdminExists))
				return
			}
			if validationErr, ok := schemaFailure(err); ok {
				respondWithError(c, route, validationErr)
				return
			}
			respondWithError(c, route, apperrors.Internal(msgAdminSignupFailed, err))
			return
		}

		log.Info().Str("route", route).Str("adminId", admin.AdminID).Msg("admin registered")
		c.JSON(http.StatusCreated, gin.H{"message": "Admin signup successful", "admin": admin})
	}
}

/*
POST /login_admin
- Unknown email and wrong password answer the same way
*/
func AdminLogin(admins AdminStore, tokens *auth.Tokens) gin.HandlerFunc {
	const route = "LOGIN_ADMIN"
	return func(c *gin.Context) {
		var req AdminLoginRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err)
			return
		}

		admin, err := admins.FindByEmail(c.Request.Context(), normalizeEmail(req.Email))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, route, apperrors.Unauthorized(msgAdminBadLogin))
			return
		}
		if err != nil {
			respondWithError(c, route, apperrors.Internal("Server error", err))
			return
		}

		if !auth.CheckPassword(admin.Password, req.Password) {
			respondWithError(c, route, apperrors.Unauthorized(msgAdminBadLogin))
			return
		}

		body := gin.H{"message": "Login successful", "admin": admin}
		if tokens != nil {
			token, err := tokens.Issue(admin.ID.Hex(), admin.Email, auth.RoleAdmin)
			if err != nil {
				respondWithError(c, route, apperrors.Internal("Server error", err))
				return
			}
			body["token"] = token
		}

		log.Info().Str("route", route).Str("adminId", admin.AdminID).Msg("admin login succeeded")
		c.JSON(http.StatusOK, body)
	}
}
