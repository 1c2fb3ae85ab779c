package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	u, err := NewUser("alice", "password123", RoleManager)
	assert.NoError(t, err)

	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(u)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, RoleManager, claims.Role)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	u, err := NewUser("alice", "password123", RoleStaff)
	assert.NoError(t, err)

	token, err := NewTokenIssuer("secret-a", time.Hour).Issue(u)
	assert.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	u, err := NewUser("alice", "password123", RoleStaff)
	assert.NoError(t, err)

	issuer := NewTokenIssuer("test-secret", -time.Minute)
	token, err := issuer.Issue(u)
	assert.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	u, err := NewUser("bob", "longenough", RoleStaff)
	assert.NoError(t, err)

	assert.NotEqual(t, "longenough", u.PasswordHash)
	assert.True(t, u.CheckPassword("longenough"))
	assert.False(t, u.CheckPassword("wrong"))

	_, err = NewUser("bob", "short", RoleStaff)
	assert.Error(t, err)
}
