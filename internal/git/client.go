// Package git queries repositories for the metadata pplaces caches and
// forwards clone requests to the git executable.
package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/inovacc/pplaces/internal/model"
)

// Tool is the read-only view of a repository needed to build its cache record
type Tool interface {
	// Remotes returns the remote list, one "url (direction)" entry per line of `git remote -v`
	Remotes(ctx context.Context, repoPath string) ([]string, error)

	// LastCommit returns the time of the newest commit on HEAD, nil for an empty repository
	LastCommit(ctx context.Context, repoPath string) (*model.Timestamp, error)
}

// Client runs the git executable
type Client struct {
	GitPath string    // Path to git executable
	Stderr  io.Writer // Receives clone progress and errors
	Logger  *slog.Logger
}

var _ Tool = (*Client)(nil)

// NewClient creates a client for the named git binary, resolved on PATH.
func NewClient(binary string, logger *slog.Logger) (*Client, error) {
	if binary == "" {
		binary = "git"
	}

	gitPath, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("git executable not found: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		GitPath: gitPath,
		Stderr:  os.Stderr,
		Logger:  logger,
	}, nil
}

// Command creates a git command with a stable, non-localized environment
func (c *Client) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")

	return cmd
}

// output runs git and returns stdout, wrapping failures in a GitError
func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	c.Logger.Debug("running git", slog.Any("args", args))

	var stdout, stderr bytes.Buffer

	cmd := c.Command(ctx, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), NewGitError(args, stderr.String(), err)
	}

	return stdout.String(), nil
}

func gitDir(repoPath string) string {
	return filepath.Join(repoPath, ".git")
}

// Remotes runs `git remote -v` against the repository's .git directory
func (c *Client) Remotes(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.output(ctx, "--git-dir", gitDir(repoPath), "remote", "-v")
	if err != nil {
		return nil, err
	}

	return ParseRemotes(out)
}

// LastCommit runs `git log -n 1 --format=%ci` against the repository's .git directory
func (c *Client) LastCommit(ctx context.Context, repoPath string) (*model.Timestamp, error) {
	out, err := c.output(ctx, "--git-dir", gitDir(repoPath), "log", "-n", "1", "--format=%ci")
	if err != nil {
		if IsNoCommits(err) {
			return nil, nil
		}

		return nil, err
	}

	return ParseCommitTime(out)
}

// Clone runs `git clone` with args passed through untouched.
// Only stderr is attached; stdout is discarded.
func (c *Client) Clone(ctx context.Context, args []string) error {
	full := append([]string{"clone"}, args...)
	c.Logger.Debug("running git", slog.Any("args", full))

	cmd := c.Command(ctx, full...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = io.Discard
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return NewGitError(full, "", err)
	}

	return nil
}

// IsRepository reports whether dir directly contains a .git directory
func IsRepository(dir string) bool {
	info, err := os.Stat(gitDir(dir))
	return err == nil && info.IsDir()
}
