package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct-horse", hash)

	assert.NoError(t, ComparePassword(hash, "correct-horse"))
	assert.Error(t, ComparePassword(hash, "wrong-horse"))
}

func TestHashPassword_UsesConfiguredCost(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	first, err := HashPassword("correct-horse")
	require.NoError(t, err)
	second, err := HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
