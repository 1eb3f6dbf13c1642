package errors

import (
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// Limits for user-supplied text. Labels themselves are unbounded; these only
// guard the request fields that arrive from forms.
const (
	maxTitleLength   = 200
	maxContentLength = 64 * 1024
	maxFilename      = 255
)

// ValidateTitle validates a document title.
//
// The title is drawn on the canvas and used to derive download filenames, so
// it must be non-empty, reasonably short and free of control characters.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidInput, "missing required field: title").WithField("title")
	}
	if len([]rune(title)) > maxTitleLength {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", maxTitleLength).WithField("title")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "title contains invalid control characters").WithField("title")
		}
	}
	return nil
}

// ValidateContent validates the outline text a document is generated from.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return New(ErrCodeInvalidInput, "missing required field: content").WithField("content")
	}
	if len(content) > maxContentLength {
		return New(ErrCodeInvalidInput, "content too long (max %d bytes)", maxContentLength).WithField("content")
	}
	if strings.ContainsRune(content, '\x00') {
		return New(ErrCodeInvalidInput, "content contains null bytes").WithField("content")
	}
	return nil
}

// ValidateHexColor validates a CSS hex color (#rgb or #rrggbb).
// An empty string is valid and means "use the default".
func ValidateHexColor(field, value string) error {
	if value == "" {
		return nil
	}
	if !strings.HasPrefix(value, "#") || (len(value) != 4 && len(value) != 7) {
		return New(ErrCodeInvalidColor, "%s must be a hex color like #1890ff, got %q", field, value).WithField(field)
	}
	if _, err := colorful.Hex(value); err != nil {
		return New(ErrCodeInvalidColor, "%s must be a hex color like #1890ff, got %q", field, value).WithField(field)
	}
	return nil
}

// ValidatePath validates an output path supplied on the command line or in a request.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// SanitizeFilename turns a document title into a safe download filename stem.
// Path separators, control characters and reserved punctuation are replaced
// with underscores; an empty result becomes "mindmap".
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsControl(r), strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ". ")
	if out == "" {
		return "mindmap"
	}
	if r := []rune(out); len(r) > maxFilename {
		out = string(r[:maxFilename])
	}
	return out
}
