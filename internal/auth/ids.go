package auth

import (
	"strings"

	"github.com/google/uuid"
)

const (
	StudentIDPrefix = "STU-"
	AdminIDPrefix   = "ADM-"
)

// NewStudentID returns "STU-" followed by a random v4 UUID.
func NewStudentID() string {
	return StudentIDPrefix + uuid.NewString()
}

// NewAdminID returns "ADM-" followed by the first 8 hex digits of a v4 UUID, uppercased.
func NewAdminID() string {
	return AdminIDPrefix + strings.ToUpper(uuid.NewString()[:8])
}
