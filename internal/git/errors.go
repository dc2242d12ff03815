package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Common error messages from git
const (
	errMsgNotRepository = "not a git repository"
	errMsgNoCommits     = "does not have any commits yet"
	errMsgBadHead       = "bad default revision 'HEAD'"
)

// GitError represents a failed git invocation
type GitError struct {
	Args     []string
	ExitCode int
	Stderr   string
	err      error
}

func (e *GitError) Error() string {
	cmd := strings.Join(e.Args, " ")

	if e.Stderr == "" {
		return fmt.Sprintf("git %s failed: %v", cmd, e.err)
	}

	return fmt.Sprintf("git %s failed: %s", cmd, strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error {
	return e.err
}

// NewGitError creates a GitError from command output and error
func NewGitError(args []string, stderr string, err error) *GitError {
	exitCode := -1

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return &GitError{
		ExitCode: exitCode,
		Stderr:   stderr,
		Args:     args,
		err:      err,
	}
}

// ParseError reports git output that does not have the expected shape
type ParseError struct {
	What   string
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected %s output %q: %s", e.What, e.Input, e.Reason)
}

// IsNotRepository checks if the error indicates not a git repository
func IsNotRepository(err error) bool {
	return containsError(err, errMsgNotRepository)
}

// IsNoCommits checks if the error comes from querying the log of an empty repository
func IsNoCommits(err error) bool {
	return containsError(err, errMsgNoCommits) || containsError(err, errMsgBadHead)
}

// containsError checks if the error contains a specific message
func containsError(err error, msg string) bool {
	if err == nil {
		return false
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return strings.Contains(strings.ToLower(gitErr.Stderr), strings.ToLower(msg))
	}

	return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(msg))
}

// GetExitCode returns the exit code from a git error, or -1 if not available
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return gitErr.ExitCode
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
