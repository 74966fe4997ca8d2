package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusforms/internal/apperrors"
	"campusforms/internal/store"
)

func respondWithError(c *gin.Context, route string, err error) {
	status := apperrors.Status(err)

	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Cause != nil {
		event = event.AnErr("cause", appErr.Cause)
	}
	event.Str("route", route).Int("status", status).Msg(err.Error())

	c.AbortWithStatusJSON(status, apperrors.Body(err))
}

func parseObjectID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("invalid id")
	}
	return id, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperrors.Validation("invalid body", err.Error())
	}
	return nil
}

// schemaFailure turns a store schema violation into a client validation error.
func schemaFailure(err error) (*apperrors.Error, bool) {
	var schemaErr *store.SchemaError
	if !errors.As(err, &schemaErr) {
		return nil, false
	}
	return apperrors.Validation("validation failed", schemaErr.Problems...), true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
