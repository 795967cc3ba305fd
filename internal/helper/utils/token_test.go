package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomTokenLengthAndEncoding(t *testing.T) {
	token, err := RandomToken(32)
	require.NoError(t, err)
	assert.Len(t, token, 64)

	_, err = hex.DecodeString(token)
	assert.NoError(t, err)
}

func TestRandomTokenUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := RandomToken(32)
		require.NoError(t, err)
		require.False(t, seen[token], "token collision")
		seen[token] = true
	}
}
