package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify_RoundTrip(t *testing.T) {
	h, err := Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", h)
	assert.True(t, Verify("secret", h))
}

func TestVerify_WrongPassword(t *testing.T) {
	h, err := Hash("secret")
	require.NoError(t, err)
	assert.False(t, Verify("wrong", h))
}

func TestHash_Salted(t *testing.T) {
	h1, err := Hash("secret")
	require.NoError(t, err)
	h2, err := Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
	assert.True(t, Verify("secret", h1))
	assert.True(t, Verify("secret", h2))
}

func TestHash_TooLongRejected(t *testing.T) {
	_, err := Hash(strings.Repeat("x", 73))
	assert.Error(t, err)
}

func TestVerify_GarbageHash(t *testing.T) {
	assert.False(t, Verify("secret", "not-a-bcrypt-hash"))
}
