package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
)

const maxFileNameLen = 128

// ErrInvalidFileName is returned for names that are empty or only dots once cleaned.
var ErrInvalidFileName = errors.New("invalid file name")

// OpaqueKey hashes the joined parts into a stable, path-safe hex string.
func OpaqueKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// SanitizeFileName flattens separators, drops control characters and caps the length.
// The result never contains a path separator, so dots inside a name are kept.
func SanitizeFileName(name string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('_')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if strings.Trim(s, ".") == "" {
		return "", ErrInvalidFileName
	}
	if runes := []rune(s); len(runes) > maxFileNameLen {
		s = string(runes[len(runes)-maxFileNameLen:])
	}
	return s, nil
}
