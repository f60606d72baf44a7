package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a record file path supplied on the command line or
// through the HTTP API.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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

// ValidateRecord rejects records that cannot be a single-line notation
// string. Graph6, SMILES and LGI records are all printable ASCII.
func ValidateRecord(s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidInput, "empty record")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return New(ErrCodeInvalidInput, "record contains non-printable byte 0x%02x at offset %d", s[i], i)
		}
	}
	return nil
}
