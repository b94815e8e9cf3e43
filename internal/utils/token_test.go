package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureToken(t *testing.T) {
	t1, err := GenerateSecureToken(32)
	require.NoError(t, err)
	t2, err := GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEmpty(t, t1)
	assert.NotEqual(t, t1, t2)
}

func TestGenerateHexSecret(t *testing.T) {
	s, err := GenerateHexSecret(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)
}

func TestGenerateNumericCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateNumericCode(4)
		require.NoError(t, err)
		require.Len(t, code, 4)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}
