package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidGitInput marks a branch, remote URL or checkout path that must
// not be passed to git.
var ErrInvalidGitInput = errors.New("invalid git input")

var (
	gitBranchPattern = regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)

	// gitRemotePatterns are the remote forms a checkout may clone from.
	gitRemotePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^https://[a-zA-Z0-9.-]+/[a-zA-Z0-9_./-]+$`),
		regexp.MustCompile(`^git@[a-zA-Z0-9.-]+:[a-zA-Z0-9_./-]+$`),
		regexp.MustCompile(`^ssh://[a-zA-Z0-9@.-]+/[a-zA-Z0-9_./-]+$`),
		regexp.MustCompile(`^file:///[a-zA-Z0-9_./-]+$`),
		regexp.MustCompile(`^/[a-zA-Z0-9_./-]+$`),
	}

	gitUnsafeChars = []string{";", "&", "|", "$", "`", "(", ")", "{", "}", "<", ">", "!", "\n", "\r"}
)

// checkGitInput applies the checks shared by every git argument: a length
// limit, no null byte and no shell syntax.
func checkGitInput(kind, value string, maxLen int) error {
	if len(value) > maxLen {
		return fmt.Errorf("%w: %s too long (max %d characters)", ErrInvalidGitInput, kind, maxLen)
	}
	if strings.ContainsRune(value, '\x00') {
		return fmt.Errorf("%w: %s contains null byte", ErrInvalidGitInput, kind)
	}
	for _, char := range gitUnsafeChars {
		if strings.Contains(value, char) {
			return fmt.Errorf("%w: %s contains invalid character %q", ErrInvalidGitInput, kind, char)
		}
	}
	return nil
}

// ValidateGitBranch validates the branch a checkout tracks. Empty means
// the remote's default branch.
func ValidateGitBranch(branch string) error {
	if branch == "" {
		return nil
	}
	if err := checkGitInput("branch name", branch, 255); err != nil {
		return err
	}
	if strings.HasPrefix(branch, "-") || !gitBranchPattern.MatchString(branch) {
		return fmt.Errorf("%w: branch name %q may only contain letters, digits, '-', '_', '/' and '.'", ErrInvalidGitInput, branch)
	}
	if strings.Contains(branch, "..") {
		return fmt.Errorf("%w: branch name cannot contain '..'", ErrInvalidGitInput)
	}
	return nil
}

// ValidateGitRemoteURL validates the URL a checkout is cloned from:
// HTTPS, SSH (scp-like or ssh://), file:// or an absolute local path.
func ValidateGitRemoteURL(url string) error {
	if url == "" {
		return nil
	}
	if err := checkGitInput("remote URL", url, 2048); err != nil {
		return err
	}
	for _, pattern := range gitRemotePatterns {
		if pattern.MatchString(url) {
			return nil
		}
	}
	return fmt.Errorf("%w: invalid git remote URL %q: must be HTTPS, SSH or a local path", ErrInvalidGitInput, url)
}

// ValidateGitPath validates the directory a checkout lives in.
func ValidateGitPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: path cannot be empty", ErrInvalidGitInput)
	}
	if strings.HasPrefix(path, "-") {
		return fmt.Errorf("%w: path %q looks like a flag", ErrInvalidGitInput, path)
	}
	return checkGitInput("path", path, 4096)
}
