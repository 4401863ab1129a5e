// Package validation checks manifest values before they are passed to
// external commands, so that no value can inject shell syntax or flags.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidPackageName = errors.New("invalid package name")
	ErrCommandInjection   = errors.New("potential command injection detected")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidUnitName    = errors.New("invalid systemd unit name")
	ErrInvalidModule      = errors.New("invalid Python module name")
)

var (
	// packageNameRegex matches package names across pacman, apt and dnf.
	// Examples: "cava", "gnome-bluetooth-3.0", "python3.11", "g++"
	packageNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	// urlRegex matches plain http(s) download URLs.
	urlRegex = regexp.MustCompile(`^https?://[a-zA-Z0-9][a-zA-Z0-9._/-]*$`)

	// unitNameRegex matches systemd unit names with an optional suffix,
	// e.g. "NetworkManager", "iwd.service", "getty@tty1.service".
	unitNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9:_.@\\-]*$`)

	// moduleRegex matches dotted Python import paths.
	moduleRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

	shellMetaChars = []string{";", "&", "|", "$", "`", "(", ")", "{", "}", "<", ">", "!", "\n", "\r", "\\", "'", "\""}
)

// ValidatePackageName validates an OS package name.
func ValidatePackageName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if len(name) > 256 {
		return fmt.Errorf("%w: name too long (max 256 characters)", ErrInvalidPackageName)
	}
	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q contains invalid characters", ErrInvalidPackageName, name)
	}
	if containsShellMeta(name) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, name)
	}
	return nil
}

// ValidatePackageNames validates every name and reports the first failure.
func ValidatePackageNames(names []string) error {
	for _, name := range names {
		if err := ValidatePackageName(name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateURL validates a download URL.
func ValidateURL(urlStr string) error {
	if urlStr == "" {
		return ErrEmptyInput
	}
	if len(urlStr) > 2048 {
		return fmt.Errorf("%w: URL too long", ErrInvalidURL)
	}
	if !urlRegex.MatchString(urlStr) {
		return fmt.Errorf("%w: %q must be a valid HTTP/HTTPS URL", ErrInvalidURL, urlStr)
	}
	if containsShellMeta(urlStr) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, urlStr)
	}
	return nil
}

// ValidateUnitName validates a systemd unit name.
func ValidateUnitName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if len(name) > 256 || !unitNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidUnitName, name)
	}
	return nil
}

// ValidatePythonModule validates a module name passed to "python -c import".
func ValidatePythonModule(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if !moduleRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidModule, name)
	}
	return nil
}

// containsShellMeta checks if a string contains shell metacharacters.
func containsShellMeta(s string) bool {
	for _, char := range shellMetaChars {
		if strings.Contains(s, char) {
			return true
		}
	}
	return false
}
