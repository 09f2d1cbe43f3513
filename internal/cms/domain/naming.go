package domain

import (
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// IsAllowedExtension reports whether the file name carries an accepted image extension.
func IsAllowedExtension(name string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// SanitizeFilename replaces whitespace runs with "-" and drops every rune
// outside [A-Za-z0-9_.-].
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	inSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		if isNameRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == '-':
		return true
	}
	return false
}

// BuildStoredName prefixes the sanitized original name with a unique id.
func BuildStoredName(id int64, original string) string {
	return strconv.FormatInt(id, 10) + "-" + SanitizeFilename(filepath.Base(original))
}

// BuildPublicURL derives the public address of a stored file.
func BuildPublicURL(base string, category Category, filename string) string {
	return strings.TrimRight(base, "/") + "/" + string(category) + "/" + url.PathEscape(filename)
}

// ValidateStoredName guards delete paths against traversal.
func ValidateStoredName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidFilename
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return ErrInvalidFilename
	}
	return nil
}

// DecodeFilename percent-decodes a filename that may still be escaped after
// transport-level decoding.
func DecodeFilename(raw string) (string, error) {
	if !strings.Contains(raw, "%") {
		return raw, nil
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", ErrInvalidFilename
	}
	return decoded, nil
}
