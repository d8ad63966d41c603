package security_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ckp1990/population-ecology-games/internal/security"
)

func TestSanitizeDisplayName(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		assert.Equal(t, "Ava", security.SanitizeDisplayName("  Ava  "))
	})

	t.Run("empty and whitespace fall back to placeholder", func(t *testing.T) {
		assert.Equal(t, security.FallbackDisplayName, security.SanitizeDisplayName(""))
		assert.Equal(t, security.FallbackDisplayName, security.SanitizeDisplayName("   \t "))
	})

	t.Run("truncates long names by rune count", func(t *testing.T) {
		long := strings.Repeat("é", security.MaxDisplayNameLength+10)
		got := security.SanitizeDisplayName(long)
		assert.Equal(t, security.MaxDisplayNameLength, len([]rune(got)))
	})

	t.Run("strips markup characters", func(t *testing.T) {
		assert.Equal(t, "scriptAva", security.SanitizeDisplayName("<script>Ava"))
	})

	t.Run("strips control characters", func(t *testing.T) {
		assert.Equal(t, "Ava", security.SanitizeDisplayName("A\x00v\x1ba\x7f"))
	})

	t.Run("only stripped characters fall back to placeholder", func(t *testing.T) {
		assert.Equal(t, security.FallbackDisplayName, security.SanitizeDisplayName("<<>>"))
	})

	t.Run("deterministic for ledger keying", func(t *testing.T) {
		assert.Equal(t,
			security.SanitizeDisplayName(" Ava "),
			security.SanitizeDisplayName("Ava"))
	})
}
