package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"campusforms/internal/apperrors"
	"campusforms/internal/auth"
	"campusforms/internal/models"
	"campusforms/internal/store"
)

const msgStudentExists = "Student already registered with this email"

type StudentSignupRequest struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     models.Text `json:"phone"`
	College   string      `json:"college"`
	Degree    string      `json:"degree"`
	Year      models.Text `json:"year"`
	Stream    string      `json:"stream"`
	BirthDate string      `json:"birthDate"`
	Password  string      `json:"password"`
}

var birthDateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// parseBirthDate returns the zero time for an empty value so the schema
// check reports the field as missing.
func parseBirthDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range birthDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, apperrors.Validation("validation failed", "birthDate is invalid")
}

/*
POST /signup_stu
- Email must be unused in the staging collection
- Password is stored as a bcrypt hash only
*/
func SignupStudent(students StudentStore) gin.HandlerFunc {
	const route = "SIGNUP_STU"
	return func(c *gin.Context) {
		var req StudentSignupRequest
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, route, err)
			return
		}

		birthDate, err := parseBirthDate(req.BirthDate)
		if err != nil {
			respondWithError(c, route, err)
			return
		}
		if req.Password == "" {
			respondWithError(c, route, apperrors.Validation("validation failed", "password is required"))
			return
		}

		ctx := c.Request.Context()
		email := normalizeEmail(req.Email)

		_, err = students.FindByEmail(ctx, email)
		switch {
		case err == nil:
			respondWithError(c, route, apperrors.Conflict(msgStudentExists))
			return
		case !errors.Is(err, store.ErrNotFound):
			respondWithError(c, route, apperrors.Internal("Server error during registration", err))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			respondWithError(c, route, apperrors.Internal("Server error during registration", err))
			return
		}

		student := &models.Student{
			StudentID: auth.NewStudentID(),
			Name:      strings.TrimSpace(req.Name),
			Email:     email,
			Phone:     req.Phone.String(),
			College:   strings.TrimSpace(req.College),
			Degree:    strings.TrimSpace(req.Degree),
			Year:      req.Year.String(),
			Stream:    strings.TrimSpace(req.Stream),
			BirthDate: birthDate,
			Password:  hash,
		}

		if err := students.Insert(ctx, student); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				respondWithError(c, route, apperrors.Conflict(msgStudentExists))
				return
			}
			if validationErr, ok := schemaFailure(err); ok {
				respondWithError(c, route, validationErr)
				return
			}
			respondWithError(c, route, apperrors.Internal("Server error during registration", err))
			return
		}

		log.Info().Str("route", route).Str("studentId", student.StudentID).Msg("student registered")
		c.JSON(http.StatusCreated, gin.H{"message": "Student registered successfully!"})
	}
}
