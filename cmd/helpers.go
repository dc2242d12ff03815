package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"

	"github.com/inovacc/pplaces/internal/core"
	"github.com/inovacc/pplaces/internal/git"
	"github.com/inovacc/pplaces/internal/model"
	"github.com/inovacc/pplaces/internal/store"
)

// setupLogger builds the process logger. Logs always go to stderr so that
// stdout carries only command output.
func setupLogger(levelStr string, jsonOutput bool) *slog.Logger {
	var level slog.Level

	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// expandPath expands ~ to the user's home directory and returns an absolute path
func expandPath(path string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("path is empty")
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// newTool returns the metadata backend selected in the configuration.
func newTool(c model.Config, l *slog.Logger) (git.Tool, error) {
	switch c.Git.Backend {
	case model.GitBackendGoGit:
		return &git.GoGit{Logger: l}, nil
	default:
		return git.NewClient(c.Git.Binary, l)
	}
}

// openStore opens the configured cache backend.
func openStore(c model.Config) (store.Store, error) {
	st, err := store.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	return st, nil
}

// printPaths writes one path per line.
func printPaths(w io.Writer, cache model.Cache) {
	for _, repo := range cache {
		_, _ = fmt.Fprintln(w, repo.Path)
	}
}

// printRecent writes the paths of records with a commit in the last days.
func printRecent(w io.Writer, cache model.Cache, days int) {
	printPaths(w, core.FilterRecent(cache, days, time.Now()))
}
