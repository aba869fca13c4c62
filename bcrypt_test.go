package accounts_test

import (
	"testing"

	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := accounts.HashPasswordCost("s3cret-value", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "s3cret-value", hash)

	assert.NoError(t, accounts.ComparePasswordAndHash("s3cret-value", hash))
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	_, err := accounts.HashPassword("")
	assert.ErrorIs(t, err, accounts.ErrNoEmptyString)
}

func TestComparePasswordAndHash_Mismatch(t *testing.T) {
	hash, err := accounts.HashPasswordCost("s3cret-value", 4)
	require.NoError(t, err)

	err = accounts.ComparePasswordAndHash("wrong-value", hash)
	assert.ErrorIs(t, err, accounts.ErrMismatchedHashAndPassword)
}

func TestComparePasswordAndHash_NotAHash(t *testing.T) {
	err := accounts.ComparePasswordAndHash("anything", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, accounts.ErrMismatchedHashAndPassword)
}
