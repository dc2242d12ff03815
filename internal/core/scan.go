package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/inovacc/pplaces/internal/git"
	"github.com/inovacc/pplaces/internal/model"
)

// ScanOptions configures a scan
type ScanOptions struct {
	Root    string   // Directory to walk
	Tool    git.Tool // Metadata source
	Jobs    int      // Concurrent fetches (<= 1 means sequential)
	Exclude []string // Directory names to skip
	Logger  *slog.Logger

	// OnFound is called for each discovered repository, OnFetched after its
	// metadata is read. Both may be called from several goroutines when Jobs > 1.
	OnFound   func(path string)
	OnFetched func(repo model.Repository)
}

// ScanResult summarizes a scan
type ScanResult struct {
	RunID string      `json:"run_id"`
	Root  string      `json:"root"`
	Found []string    `json:"found"`
	Cache model.Cache `json:"-"`
}

// Scan walks opts.Root, fetches every repository found and merges the
// records into cache. The returned cache is sorted most recent first.
// Any walk or fetch failure aborts the scan and leaves cache untouched.
func Scan(ctx context.Context, opts ScanOptions, cache model.Cache) (*ScanResult, error) {
	if opts.Tool == nil {
		return nil, fmt.Errorf("scan: no git tool configured")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	root, err := ResolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{RunID: uuid.NewString(), Root: root, Found: make([]string, 0)}
	logger = logger.With("run", result.RunID)
	logger.Info("scan started", "root", root, "jobs", opts.Jobs)

	err = DiscoverRepositories(root, opts.Exclude, func(path string) error {
		logger.Debug("repository found", "path", path)
		result.Found = append(result.Found, path)

		if opts.OnFound != nil {
			opts.OnFound(path)
		}

		return ctx.Err()
	})
	if err != nil {
		return nil, err
	}

	repos, err := fetchAll(ctx, opts, logger, result.Found)
	if err != nil {
		return nil, err
	}

	merged := make(model.Cache, len(cache), len(cache)+len(repos))
	copy(merged, cache)

	for _, repo := range repos {
		merged = Merge(merged, repo)
	}

	SortByLastCommit(merged)
	result.Cache = merged

	logger.Info("scan finished", "found", len(result.Found), "cached", len(merged))

	return result, nil
}

// fetchAll reads metadata for paths, keeping the input order in the result.
func fetchAll(ctx context.Context, opts ScanOptions, logger *slog.Logger, paths []string) ([]model.Repository, error) {
	repos := make([]model.Repository, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Jobs, 1))

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			repo, err := FetchRepository(gctx, opts.Tool, path)
			if err != nil {
				return err
			}

			logger.Debug("repository fetched", "path", path, "remotes", len(repo.Remotes), "last_commit", repo.LastCommit)
			repos[i] = repo

			if opts.OnFetched != nil {
				opts.OnFetched(repo)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return repos, nil
}

// ResolveRoot makes path absolute and checks that it is a directory.
func ResolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %w", err)
	}

	if !info.IsDir() {
		return "", &NotDirectoryError{Path: abs}
	}

	return abs, nil
}
