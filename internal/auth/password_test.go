package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("testpassword123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.True(t, VerifyPassword("testpassword123", hash))
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := HashPassword("samepassword1")
	require.NoError(t, err)
	second, err := HashPassword("samepassword1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("samepassword1", first))
	assert.True(t, VerifyPassword("samepassword1", second))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("rightpassword1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"matching password", "rightpassword1", hash, true},
		{"wrong password", "wrongpassword1", hash, false},
		{"empty password", "", hash, false},
		{"garbage hash", "rightpassword1", "not-a-hash", false},
		{"wrong algorithm", "rightpassword1", "$bcrypt$v=19$m=65536,t=1,p=4$abc$def", false},
		{"truncated hash", "rightpassword1", hash[:len(hash)-10] + "tampered!!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.password, tt.hash))
		})
	}
}
