package storage

import (
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

const (
	timestampLayout = "20060102150405"
	stagingPrefix   = ".staging-"
	fallbackName    = "attachment"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces an uploaded filename to a safe base name:
// ASCII letters, digits, '_', '.', '-' only, no path components, no leading dots.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	ascii := b.String()

	ascii = strings.NewReplacer("/", " ", "\\", " ").Replace(ascii)
	ascii = strings.Join(strings.Fields(ascii), "_")
	ascii = unsafeChars.ReplaceAllString(ascii, "")
	return strings.Trim(ascii, "._")
}

// NewStorageName builds "<timestamp>_<8 hex>_<sanitized original>"
func NewStorageName(originalName string, now time.Time) string {
	safe := SanitizeFilename(originalName)
	ext := SanitizeFilename(strings.ToLower(path.Ext(originalName)))
	if ext != "" {
		ext = "." + ext
	}
	if safe == "" || !strings.HasSuffix(strings.ToLower(safe), ext) {
		safe = fallbackName + ext
	}
	return now.Format(timestampLayout) + "_" + uuid.NewString()[:8] + "_" + safe
}

// HasExtension reports whether name ends with one of exts (without dot, case-insensitive)
func HasExtension(name string, exts []string) bool {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return false
	}
	ext := strings.ToLower(name[idx+1:])
	for _, allowed := range exts {
		if ext == strings.ToLower(strings.TrimPrefix(allowed, ".")) {
			return true
		}
	}
	return false
}

// DownloadName builds the suggested download filename from a thesis title.
// Path separators and control characters are dropped so the header stays a single base name.
func DownloadName(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, title)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = strings.Trim(cleaned, ". ")
	if cleaned == "" {
		cleaned = "thesis"
	}
	return cleaned + ".pdf"
}

// validateName accepts only names this package could have generated
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return ErrInvalidName
	}
	if SanitizeFilename(name) != name && !strings.HasPrefix(name, stagingPrefix) {
		return ErrInvalidName
	}
	return nil
}

func isStagingName(name string) bool {
	return strings.HasPrefix(name, stagingPrefix)
}

func newStagingName() string {
	return stagingPrefix + uuid.NewString()
}
