package core

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const gitDirName = ".git"

// DiscoverRepositories walks root depth-first and calls found for every
// directory that directly contains a .git directory. The root is checked
// first; a repository ends its branch, so nested repositories are not
// reported. Directories whose name is in exclude are skipped. Symlinked
// directories are not followed. The first read error aborts the walk.
func DiscoverRepositories(root string, exclude []string, found func(path string) error) error {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	return discover(root, skip, found)
}

func discover(dir string, skip map[string]bool, found func(string) error) error {
	repo, err := hasGitDir(dir)
	if err != nil {
		return err
	}

	if repo {
		return found(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return &WalkError{Path: dir, Err: err}
	}

	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == gitDirName || skip[entry.Name()] {
			continue
		}

		if err := discover(filepath.Join(dir, entry.Name()), skip, found); err != nil {
			return err
		}
	}

	return nil
}

// hasGitDir reports whether dir/.git exists and is a directory.
// A .git file (worktree, submodule) does not count.
func hasGitDir(dir string) (bool, error) {
	info, err := os.Stat(filepath.Join(dir, gitDirName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, &WalkError{Path: dir, Err: err}
	}

	return info.IsDir(), nil
}
