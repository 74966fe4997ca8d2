package auth

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, "secret", hash)
	assert.Contains(t, hash, "$10$")
	assert.True(t, CheckPassword(hash, "secret"))
	assert.False(t, CheckPassword(hash, "Secret"))

	again, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salt should differ per hash")
}

func TestIdentifiers(t *testing.T) {
	studentID := NewStudentID()
	assert.Regexp(t, regexp.MustCompile(`^STU-[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`), studentID)
	assert.NotEqual(t, studentID, NewStudentID())

	assert.Regexp(t, regexp.MustCompile(`^ADM-[0-9A-F]{8}$`), NewAdminID())
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Minute)

	raw, err := tokens.Issue("665f1c2a9b1e8a0012345678", "a@x.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, Claims{Subject: "665f1c2a9b1e8a0012345678", Email: "a@x.com", Role: RoleAdmin}, claims)
}

func TestTokensRejectExpiredAndForeign(t *testing.T) {
	tokens := NewTokens("test-secret", time.Minute)
	raw, err := tokens.Issue("id", "a@x.com", RoleUser)
	require.NoError(t, err)

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokens("other-secret", time.Minute)
	_, err = other.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
