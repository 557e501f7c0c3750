package installer

import (
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// fallbackSkillName is substituted when sanitization strips a name down to nothing.
	fallbackSkillName = "unnamed-skill"

	maxSkillNameLength = 255
)

// SanitizeName turns an arbitrary string into a string safe to use as a
// single path segment. The result contains no path separators, drive
// delimiters, or null bytes, never starts with a dot, is at most 255
// characters, and is never empty.
func SanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return -1
		}
		return r
	}, name)

	cleaned = strings.TrimFunc(cleaned, func(r rune) bool {
		return r == '.' || unicode.IsSpace(r)
	})
	cleaned = strings.TrimLeft(cleaned, ".")

	if cleaned == "" {
		return fallbackSkillName
	}

	if runes := []rune(cleaned); len(runes) > maxSkillNameLength {
		cleaned = string(runes[:maxSkillNameLength])
	}

	return cleaned
}

// IsPathSafe reports whether target, once both paths are resolved to
// absolute cleaned form, is the base directory itself or lies strictly
// inside it. Sanitized names are expected to always pass; the check is
// applied to the composed path anyway so a failure in either layer cannot
// escape the base directory.
func IsPathSafe(base, target string) bool {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false
	}

	if absTarget == absBase {
		return true
	}

	return strings.HasPrefix(absTarget, absBase+string(filepath.Separator))
}
