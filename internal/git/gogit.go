package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/inovacc/pplaces/internal/model"
)

// GoGit reads repository metadata in-process with go-git.
// Its answers have the same shape as the ones Client gets from the git executable.
type GoGit struct {
	Logger *slog.Logger
}

var _ Tool = (*GoGit)(nil)

func (g *GoGit) open(repoPath string) (*gogit.Repository, error) {
	if g.Logger != nil {
		g.Logger.Debug("opening repository", slog.String("path", repoPath))
	}

	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", repoPath, err)
	}

	return repo, nil
}

// Remotes renders the configured remotes the way `git remote -v` prints them
// and parses the result with ParseRemotes.
func (g *GoGit) Remotes(_ context.Context, repoPath string) ([]string, error) {
	repo, err := g.open(repoPath)
	if err != nil {
		return nil, err
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes of %s: %w", repoPath, err)
	}

	sort.Slice(remotes, func(i, j int) bool {
		return remotes[i].Config().Name < remotes[j].Config().Name
	})

	var b strings.Builder

	for _, r := range remotes {
		cfg := r.Config()
		if len(cfg.URLs) == 0 {
			continue
		}

		_, _ = fmt.Fprintf(&b, "%s\t%s (fetch)\n", cfg.Name, cfg.URLs[0])

		for _, u := range cfg.URLs {
			_, _ = fmt.Fprintf(&b, "%s\t%s (push)\n", cfg.Name, u)
		}
	}

	return ParseRemotes(b.String())
}

// LastCommit returns HEAD's committer time, nil for an unborn HEAD.
func (g *GoGit) LastCommit(_ context.Context, repoPath string) (*model.Timestamp, error) {
	repo, err := g.open(repoPath)
	if err != nil {
		return nil, err
	}

	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to resolve HEAD of %s: %w", repoPath, err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit of %s: %w", repoPath, err)
	}

	return ParseCommitTime(commit.Committer.When.Format(CommitTimeLayout))
}
