package security

import (
	"regexp"
	"strings"
)

// Display name constraints
const (
	MaxDisplayNameLength = 24
	FallbackDisplayName  = "Anonymous"
)

var (
	// Characters that could be used for injection attacks when the name is
	// echoed into the dashboard DOM.
	dangerousCharsRegex = regexp.MustCompile(`[<>{}[\]\\;|&$()` + "`" + `]`)
)

// SanitizeDisplayName normalizes a user-supplied display name: trims
// whitespace, strips control and markup-dangerous characters, truncates
// to MaxDisplayNameLength runes, and falls back to a placeholder when
// nothing usable remains. Join never rejects a name; the ledger is keyed
// by whatever this returns, so the mapping must be deterministic.
func SanitizeDisplayName(raw string) string {
	name := strings.TrimSpace(raw)
	name = dangerousCharsRegex.ReplaceAllString(name, "")

	var b strings.Builder
	for _, r := range name {
		if r < 32 || r == 127 {
			continue
		}
		b.WriteRune(r)
	}
	name = strings.TrimSpace(b.String())

	if name == "" {
		return FallbackDisplayName
	}

	runes := []rune(name)
	if len(runes) > MaxDisplayNameLength {
		name = strings.TrimSpace(string(runes[:MaxDisplayNameLength]))
		if name == "" {
			return FallbackDisplayName
		}
	}

	return name
}
