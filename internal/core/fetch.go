package core

import (
	"context"

	"github.com/inovacc/pplaces/internal/git"
	"github.com/inovacc/pplaces/internal/model"
)

// FetchRepository asks tool for the remotes and the last commit time of the
// repository at path. Either failure fails the whole fetch.
func FetchRepository(ctx context.Context, tool git.Tool, path string) (model.Repository, error) {
	remotes, err := tool.Remotes(ctx, path)
	if err != nil {
		op := "listing remotes"
		if git.IsNotRepository(err) {
			op = "listing remotes (.git is not a valid repository)"
		}

		return model.Repository{}, &FetchError{Path: path, Operation: op, Err: err}
	}

	last, err := tool.LastCommit(ctx, path)
	if err != nil {
		return model.Repository{}, &FetchError{Path: path, Operation: "reading last commit", Err: err}
	}

	if remotes == nil {
		remotes = []string{}
	}

	return model.Repository{Path: path, Remotes: remotes, LastCommit: last}, nil
}
