package util

import (
	"errors"
	"path/filepath"
	"strings"
)

var errBadFileName = errors.New("invalid file name")

// SanitizeFileName reduces an uploaded file name to a safe basename.
// Directory components are stripped and anything outside a conservative
// character set is replaced with underscores. The extension survives, which
// the resume type checks rely on.
func SanitizeFileName(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", errBadFileName
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_' || r == ' ':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.Trim(b.String(), ". ")
	if out == "" {
		return "", errBadFileName
	}
	return out, nil
}
