package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789"

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	token, err := codec.Issue("64b0c1d2e3f4a5b6c7d8e9f0")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "64b0c1d2e3f4a5b6c7d8e9f0", userID)
}

func TestTokenCodec_Verify_WrongSecret(t *testing.T) {
	token, err := NewTokenCodec("some-other-secret-abcdef", time.Hour).Issue("64b0c1d2e3f4a5b6c7d8e9f0")
	require.NoError(t, err)

	_, err = NewTokenCodec(testSecret, time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestTokenCodec_Verify_Malformed(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9.e30."} {
		_, err := codec.Verify(token)
		assert.Error(t, err, "token %q must not verify", token)
	}
}

func TestTokenCodec_Verify_Expired(t *testing.T) {
	codec := NewTokenCodec(testSecret, -time.Minute)

	token, err := codec.Issue("64b0c1d2e3f4a5b6c7d8e9f0")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.Error(t, err)
}

func TestTokenCodec_TokensAreUnique(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)

	a, err := codec.Issue("64b0c1d2e3f4a5b6c7d8e9f0")
	require.NoError(t, err)
	b, err := codec.Issue("64b0c1d2e3f4a5b6c7d8e9f0")
	require.NoError(t, err)

	// jti makes two tokens for the same user distinct.
	assert.NotEqual(t, a, b)
}
