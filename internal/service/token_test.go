package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenVerifier_ParseAccess(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	token, err := v.Issue("user-42", RoleAdmin, time.Minute)
	require.NoError(t, err)

	sub, role, err := v.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
	assert.Equal(t, RoleAdmin, role)
	assert.True(t, v.IsAdmin(token))
}

func TestTokenVerifier_RejectsOtherSecretAndExpired(t *testing.T) {
	other := NewTokenVerifier("other-secret")
	token, err := other.Issue("user-42", RoleAdmin, time.Minute)
	require.NoError(t, err)

	v := NewTokenVerifier("test-secret")
	_, _, err = v.ParseAccess(token)
	assert.Error(t, err)
	assert.False(t, v.IsAdmin(token))

	expired, err := v.Issue("user-42", RoleAdmin, -time.Minute)
	require.NoError(t, err)
	assert.False(t, v.IsAdmin(expired))
}

func TestTokenVerifier_NonAdminRole(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	token, err := v.Issue("user-7", "editor", time.Minute)
	require.NoError(t, err)
	assert.False(t, v.IsAdmin(token))
}
