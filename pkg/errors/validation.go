package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// DescriptorExtensions lists the file extensions accepted as input.
var DescriptorExtensions = []string{".storyboard", ".xib"}

// ValidateDescriptorPath checks that path names an Interface Builder file.
// It does not touch the filesystem; existence is checked when loading.
func ValidateDescriptorPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "descriptor path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' {
			return New(ErrCodeInvalidPath, "descriptor path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range DescriptorExtensions {
		if ext == allowed {
			return nil
		}
	}
	return New(ErrCodeInvalidPath, "unsupported descriptor extension %q (must be .storyboard or .xib)", ext)
}

// ValidateUnitName validates a generated unit name before it is used as a
// file or object name. Names must be Swift-style identifiers so that they
// can never escape the output directory.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 128 characters
//   - Must start with a letter or underscore
//   - Only letters, digits and underscores
func ValidateUnitName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "unit name cannot be empty")
	}

	const maxNameLength = 128
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "unit name too long (max %d characters)", maxNameLength)
	}

	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return New(ErrCodeInvalidName, "unit name %q contains invalid character %q", name, r)
		}
	}
	return nil
}
