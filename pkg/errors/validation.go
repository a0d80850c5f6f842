package errors

import (
	"regexp"
	"unicode"
)

// maxPathLength bounds file paths accepted from the command line and from
// batch manifests.
const maxPathLength = 4096

const maxFormatLength = 64

// ValidatePath validates a local file path given as input or output.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 bytes
//   - No null bytes or control characters
//
// "-" is accepted and means standard input or output.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// formatPattern matches Pandoc output format names, including extension
// modifiers such as "markdown+smart" or "gfm-raw_html".
var formatPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*([+-][a-z0-9_]+)*$`)

// ValidateFormat validates a Pandoc output format name used for decoration.
//
// Validation rules:
//   - Format cannot be empty
//   - Maximum length of 64 characters
//   - Lowercase name, optionally followed by +ext or -ext modifiers
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}

	if len(format) > maxFormatLength {
		return New(ErrCodeInvalidFormat, "format too long (max %d characters)", maxFormatLength)
	}

	if !formatPattern.MatchString(format) {
		return New(ErrCodeInvalidFormat, "invalid format %q", format)
	}

	return nil
}
