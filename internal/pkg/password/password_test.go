package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	Cost = bcrypt.MinCost
	t.Cleanup(func() { Cost = DefaultCost })

	hash, err := Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.True(t, Verify("admin123", hash))
	assert.False(t, Verify("Admin123", hash))
	assert.False(t, Verify("", hash))
}

func TestHash_IsSalted(t *testing.T) {
	Cost = bcrypt.MinCost
	t.Cleanup(func() { Cost = DefaultCost })

	first, err := Hash("same-secret")
	require.NoError(t, err)
	second, err := Hash("same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify_GarbageHash(t *testing.T) {
	assert.False(t, Verify("admin123", "not-a-bcrypt-hash"))
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("short"))
	assert.True(t, ValidatePassword("long-enough"))
}
