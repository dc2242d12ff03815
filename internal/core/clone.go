package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/inovacc/pplaces/internal/git"
	"github.com/inovacc/pplaces/internal/giturl"
	"github.com/inovacc/pplaces/internal/model"
)

// Cloner runs the real clone with the user's arguments.
type Cloner interface {
	Clone(ctx context.Context, args []string) error
}

// CloneResult describes what the clone guard did
type CloneResult struct {
	URL    string // The clone URL picked from the arguments
	Suffix string // Its canonical owner/repo suffix

	// ExistingPath is set when a cached repository already has this remote;
	// no clone was attempted in that case.
	ExistingPath string

	// Destination is the directory git cloned into, resolved from the arguments.
	Destination string
}

// AlreadyCloned reports whether the guard found an existing copy.
func (r *CloneResult) AlreadyCloned() bool {
	return r.ExistingPath != ""
}

// CloneGuard picks the clone URL out of args and looks for a cached
// repository with a remote of the same owner/repo suffix. When one exists
// the clone is skipped; otherwise args are handed to cloner unchanged.
func CloneGuard(ctx context.Context, args []string, cache model.Cache, cloner Cloner, logger *slog.Logger) (*CloneResult, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	idx, url, ok := giturl.FirstURL(args)
	if !ok {
		return nil, &UsageError{Msg: "no repository URL in arguments (expected one starting with http or git@)"}
	}

	suffix, err := giturl.Canonical(url)
	if err != nil {
		return nil, err
	}

	if suffix == "" {
		return nil, &UsageError{Msg: fmt.Sprintf("no owner/repo path in %s", giturl.Redact(url))}
	}

	result := &CloneResult{URL: url, Suffix: suffix}

	if path, found := FindClone(cache, suffix, logger); found {
		logger.Info("repository already cloned", "url", giturl.Redact(url), "path", path)
		result.ExistingPath = path

		return result, nil
	}

	logger.Debug("cloning", "url", giturl.Redact(url), "suffix", suffix)

	if err := cloner.Clone(ctx, args); err != nil {
		return nil, err
	}

	dest, err := CloneDestination(args, idx)
	if err != nil {
		logger.Debug("cannot resolve clone destination", "error", err)
		return result, nil
	}

	result.Destination = dest

	return result, nil
}

// FindClone returns the path of the first cached repository with a remote
// whose canonical suffix equals suffix. Remotes that do not canonicalize
// are skipped. An empty suffix never matches.
func FindClone(cache model.Cache, suffix string, logger *slog.Logger) (string, bool) {
	if suffix == "" {
		return "", false
	}

	for _, repo := range cache {
		for _, remote := range repo.Remotes {
			got, err := giturl.Canonical(remote)
			if err != nil {
				if logger != nil {
					logger.Debug("skipping remote", "path", repo.Path, "remote", giturl.Redact(remote), "error", err)
				}

				continue
			}

			if got == suffix {
				return repo.Path, true
			}
		}
	}

	return "", false
}

// cloneValueOptions are the git clone options whose value is the next
// argument. The --opt=value forms are a single argument and need no entry.
var cloneValueOptions = map[string]bool{
	"-b":                  true,
	"--branch":            true,
	"-o":                  true,
	"--origin":            true,
	"-u":                  true,
	"--upload-pack":       true,
	"-c":                  true,
	"--config":            true,
	"-j":                  true,
	"--jobs":              true,
	"--depth":             true,
	"--reference":         true,
	"--reference-if-able": true,
	"--separate-git-dir":  true,
	"--template":          true,
	"--shallow-since":     true,
	"--shallow-exclude":   true,
	"--filter":            true,
	"--server-option":     true,
	"--bundle-uri":        true,
}

// CloneDestination resolves where git clone puts the repository: the first
// operand after the URL, or the repository name derived from the URL. The
// values of options such as --depth or -b are not operands. The result is
// absolute.
func CloneDestination(args []string, urlIndex int) (string, error) {
	if urlIndex < 0 || urlIndex >= len(args) {
		return "", fmt.Errorf("url index %d out of range", urlIndex)
	}

	dest := ""
	rest := args[urlIndex+1:]

	for i := 0; i < len(rest); i++ {
		arg := rest[i]

		if arg == "--" {
			if i+1 < len(rest) {
				dest = rest[i+1]
			}

			break
		}

		if cloneValueOptions[arg] {
			i++
			continue
		}

		if !strings.HasPrefix(arg, "-") {
			dest = arg
			break
		}
	}

	if dest == "" {
		name, err := giturl.RepoName(args[urlIndex])
		if err != nil {
			return "", err
		}

		dest = name
	}

	return filepath.Abs(dest)
}

// RefreshRepository fetches the repository at path and merges it into a
// copy of cache, which comes back sorted.
func RefreshRepository(ctx context.Context, tool git.Tool, cache model.Cache, path string) (model.Cache, error) {
	repo, err := FetchRepository(ctx, tool, path)
	if err != nil {
		return nil, err
	}

	out := make(model.Cache, len(cache), len(cache)+1)
	copy(out, cache)

	out = Merge(out, repo)
	SortByLastCommit(out)

	return out, nil
}
