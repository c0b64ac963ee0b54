package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDependencyName validates a dependency name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateDependencyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "dependency name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "dependency name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "dependency name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "dependency name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// folderNameRegex matches folder names that are safe to create under the
// dependency directory: a single path element, no separators, no leading dot.
var folderNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateFolderName validates a dependency folder name.
// It ensures the folder is a simple basename without path components,
// so two dependencies cannot escape the dependency directory.
func ValidateFolderName(folder string) error {
	if folder == "" {
		return New(ErrCodeInvalidFolder, "folder name cannot be empty")
	}

	if strings.ContainsAny(folder, "/\\") {
		return New(ErrCodeInvalidFolder, "folder name cannot contain path separators")
	}

	if folder == "." || folder == ".." {
		return New(ErrCodeInvalidFolder, "folder name cannot be a relative path element")
	}

	if !folderNameRegex.MatchString(folder) {
		return New(ErrCodeInvalidFolder, "invalid folder name: %q", folder)
	}

	return nil
}

// ValidateRepoURL validates a repository source location.
// Both remote URLs (http, https, ssh, git) and local paths are accepted;
// only obviously unusable values are rejected.
func ValidateRepoURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "repository URL cannot be empty")
	}

	for _, r := range rawURL {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "repository URL contains invalid characters")
		}
	}

	return nil
}

// ValidateManifestPath validates a manifest file path.
// It prevents null bytes and enforces a reasonable length; relative and
// absolute paths are both allowed since the manifest location is
// caller-configurable.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "manifest path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "manifest path too long (max %d characters)", maxPathLength)
	}

	if strings.Contains(path, "\x00") {
		return New(ErrCodeInvalidPath, "manifest path contains invalid characters")
	}

	return nil
}
