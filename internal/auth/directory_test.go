package auth

import (
	"testing"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDirectory_DefaultOperators(t *testing.T) {
	d, err := NewDirectory(DefaultCredentials())
	require.NoError(t, err)

	admin, err := d.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, domain.Caller{Email: "admin", Privileged: true}, admin)

	user, err := d.Authenticate("user", "user123")
	require.NoError(t, err)
	assert.Equal(t, domain.Caller{Email: "user", Privileged: false}, user)

	assert.Equal(t, 2, d.Count())
	assert.Equal(t, []string{"admin", "user"}, d.Usernames())
}

func TestDirectory_RejectsBadCredentials(t *testing.T) {
	d, err := NewDirectory(DefaultCredentials())
	require.NoError(t, err)

	_, err = d.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = d.Authenticate("ghost", "admin123")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestDirectory_UsesEmailAndPrehashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	d, err := NewDirectory([]Credentials{
		{Username: "asha", Email: "asha@example.com", PasswordHash: string(hash)},
	})
	require.NoError(t, err)

	caller, err := d.Authenticate("asha", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", caller.Email)
	assert.False(t, caller.Privileged)
}

func TestNewDirectory_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		creds []Credentials
	}{
		{"missing username", []Credentials{{Password: "x"}}},
		{"missing password", []Credentials{{Username: "a"}}},
		{"bad hash", []Credentials{{Username: "a", PasswordHash: "plain"}}},
		{"duplicate", []Credentials{{Username: "a", Password: "x"}, {Username: "a", Password: "y"}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDirectory(tc.creds)
			assert.Error(t, err)
		})
	}
}
