package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTempPassword(t *testing.T) {
	t.Run("generates requested length", func(t *testing.T) {
		password, err := GenerateTempPassword(10)
		require.NoError(t, err)
		assert.Len(t, password, 10)
	})

	t.Run("non-positive length falls back to default", func(t *testing.T) {
		password, err := GenerateTempPassword(0)
		require.NoError(t, err)
		assert.Len(t, password, TempPasswordLength)
	})

	t.Run("uses only unambiguous characters", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			password, err := GenerateTempPassword(TempPasswordLength)
			require.NoError(t, err)
			for _, ch := range password {
				assert.Contains(t, tempPasswordChars, string(ch))
			}
			// The confusable characters must never appear.
			assert.NotContains(t, password, "0")
			assert.NotContains(t, password, "O")
			assert.NotContains(t, password, "1")
			assert.NotContains(t, password, "l")
			assert.NotContains(t, password, "I")
		}
	})

	t.Run("generates distinct passwords", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			password, err := GenerateTempPassword(TempPasswordLength)
			require.NoError(t, err)
			assert.False(t, seen[password], "generated duplicate password: %s", password)
			seen[password] = true
		}
	})
}

func TestTempPasswordAlphabet(t *testing.T) {
	// The alphabet itself is part of the contract with emailed passwords.
	for _, ambiguous := range []string{"0", "O", "1", "l", "I", "o"} {
		assert.False(t, strings.Contains(tempPasswordChars, ambiguous),
			"alphabet should not contain %q", ambiguous)
	}
}
