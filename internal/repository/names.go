package repository

import (
	"path/filepath"
	"regexp"
	"strings"

	"pdf-to-speech/internal/domain"

	"github.com/google/uuid"
)

const maxOriginalNameLength = 100

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// newID returns a 128-bit random identifier as 32 lowercase hex characters.
func newID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// sanitizeOriginalName strips path components and characters that are unsafe
// on disk. The result only serves diagnostics.
func sanitizeOriginalName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = strings.TrimSpace(filepath.Base(name))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "document.pdf"
	}
	name = unsafeNameChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if len(name) > maxOriginalNameLength {
		name = name[len(name)-maxOriginalNameLength:]
	}
	if name == "" {
		return "document.pdf"
	}
	return name
}

// checkName rejects anything that is not a bare file name inside the store.
func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) ||
		name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return domain.ErrInvalidName
	}
	return nil
}
