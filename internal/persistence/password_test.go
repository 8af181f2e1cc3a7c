package persistence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embervale/coreserver/internal/persistence"
)

func TestHashPassword_VerifiesCorrectly(t *testing.T) {
	hash, err := persistence.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.True(t, persistence.VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, persistence.VerifyPassword(hash, "wrong password"))
}

func TestHashPassword_ProducesDistinctSaltedHashes(t *testing.T) {
	h1, err := persistence.HashPassword("same-password")
	require.NoError(t, err)
	h2, err := persistence.HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
