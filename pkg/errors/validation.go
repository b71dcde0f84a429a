package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxElementIDLength bounds element identifiers so generated constraint
// identifiers stay readable in logs and diagrams.
const MaxElementIDLength = 128

// IdentifierSeparator joins the participants of a generated constraint
// identifier. Element identifiers may not contain it.
const IdentifierSeparator = ":"

// ValidateElementID validates the identifier of an arranged element.
//
// Validation rules:
//   - No empty identifiers
//   - Maximum length of MaxElementIDLength characters
//   - No control characters or whitespace
//   - No IdentifierSeparator, which would make generated identifiers ambiguous
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIdentifier, "element identifier cannot be empty")
	}

	if len(id) > MaxElementIDLength {
		return New(ErrCodeInvalidIdentifier, "element identifier too long (max %d characters)", MaxElementIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidIdentifier, "element identifier %q contains whitespace or control characters", id)
		}
	}

	if strings.Contains(id, IdentifierSeparator) {
		return New(ErrCodeInvalidIdentifier, "element identifier %q cannot contain %q", id, IdentifierSeparator)
	}

	return nil
}

// supportedDocumentExts lists the stack document extensions understood by
// the stackfile package.
var supportedDocumentExts = map[string]bool{
	".toml": true,
	".yaml": true,
	".yml":  true,
	".json": true,
}

// ValidateDocumentPath validates the path of a stack document.
// It only checks the shape of the path; existence is checked on load.
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "document path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "document path contains invalid characters")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedDocumentExts[ext] {
		return New(ErrCodeInvalidFormat, "unsupported document extension %q (want .toml, .yaml, .yml or .json)", ext)
	}

	return nil
}
