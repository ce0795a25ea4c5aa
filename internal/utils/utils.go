// Package utils provides filename helpers and ID generation for stored
// uploads and action outputs.
package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const maxFilenameLen = 100

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips directories and replaces anything outside
// [a-zA-Z0-9._-] so the name is safe to store and to echo back in URLs.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	safe := unsafeFilenameChars.ReplaceAllString(base, "_")
	if len(safe) > maxFilenameLen {
		safe = safe[:maxFilenameLen]
	}
	return safe
}

func GenerateUUID() string {
	return uuid.New().String()
}

// IsUUID reports whether s is a canonical UUID string.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}

// OutputName builds the stored name for an action result, e.g.
// "rotate-<uuid>.pdf".
func OutputName(action string) string {
	return fmt.Sprintf("%s-%s.pdf", action, GenerateUUID())
}
