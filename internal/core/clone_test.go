package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/pplaces/internal/model"
)

func cloneCache() model.Cache {
	return model.Cache{
		{Path: "/w/local-only", Remotes: []string{"/srv/git/mirror.git (fetch)"}},
		{Path: "/w/bar", Remotes: []string{"git@github.com:foo/bar.git (fetch)", "git@github.com:foo/bar.git (push)"}},
		{Path: "/w/rb", Remotes: []string{"https://github.com/linebender/runebender (fetch)"}},
	}
}

func TestCloneGuard_AlreadyCloned(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"https with .git", []string{"https://github.com/foo/bar.git"}, "/w/bar"},
		{"https without .git", []string{"https://github.com/foo/bar"}, "/w/bar"},
		{"ssh against https remote", []string{"git@github.com:linebender/runebender.git"}, "/w/rb"},
		{"options before url", []string{"--depth", "1", "https://gitlab.com/foo/bar"}, "/w/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloner := &fakeCloner{}

			result, err := CloneGuard(context.Background(), tt.args, cloneCache(), cloner, nil)
			require.NoError(t, err)

			assert.True(t, result.AlreadyCloned())
			assert.Equal(t, tt.want, result.ExistingPath)
			assert.Empty(t, cloner.calls, "clone must not run")
		})
	}
}

func TestCloneGuard_Clones(t *testing.T) {
	t.Chdir(t.TempDir())

	cloner := &fakeCloner{}
	args := []string{"--depth", "1", "https://github.com/foo/baz.git"}

	result, err := CloneGuard(context.Background(), args, cloneCache(), cloner, nil)
	require.NoError(t, err)

	assert.False(t, result.AlreadyCloned())
	assert.Equal(t, "foo/baz", result.Suffix)
	require.Len(t, cloner.calls, 1)
	assert.Equal(t, args, cloner.calls[0])

	want, err := filepath.Abs("baz")
	require.NoError(t, err)
	assert.Equal(t, want, result.Destination)
}

func TestCloneGuard_CaseSensitive(t *testing.T) {
	cloner := &fakeCloner{}

	result, err := CloneGuard(context.Background(), []string{"https://github.com/Foo/Bar"}, cloneCache(), cloner, nil)
	require.NoError(t, err)
	assert.False(t, result.AlreadyCloned())
	assert.Len(t, cloner.calls, 1)
}

func TestCloneGuard_NoURL(t *testing.T) {
	cloner := &fakeCloner{}

	_, err := CloneGuard(context.Background(), []string{"--depth", "1", "foo/bar"}, cloneCache(), cloner, nil)

	var usage *UsageError
	require.True(t, errors.As(err, &usage))
	assert.Empty(t, cloner.calls)
}

func TestCloneGuard_EmptySuffix(t *testing.T) {
	cache := model.Cache{{Path: "/src/weird", Remotes: []string{"git@myhost (fetch)"}}}

	for _, url := range []string{"https://github.com", "https://github.com/", "git@github.com"} {
		t.Run(url, func(t *testing.T) {
			cloner := &fakeCloner{}

			result, err := CloneGuard(context.Background(), []string{url}, cache, cloner, nil)
			assert.Nil(t, result)

			var usage *UsageError
			require.True(t, errors.As(err, &usage))
			assert.Empty(t, cloner.calls)
		})
	}
}

func TestCloneGuard_CloneFails(t *testing.T) {
	boom := errors.New("exit status 128")
	cloner := &fakeCloner{err: boom}

	_, err := CloneGuard(context.Background(), []string{"https://github.com/foo/qux"}, nil, cloner, nil)
	require.ErrorIs(t, err, boom)
}

func TestFindClone_SkipsUnparsableRemotes(t *testing.T) {
	cache := model.Cache{
		{Path: "/w/weird", Remotes: []string{"file:///srv/foo/bar (fetch)"}},
		{Path: "/w/bar", Remotes: []string{"git@host:foo/bar (fetch)"}},
	}

	path, ok := FindClone(cache, "foo/bar", nil)
	require.True(t, ok)
	assert.Equal(t, "/w/bar", path)

	_, ok = FindClone(cache, "nope/nope", nil)
	assert.False(t, ok)
}

func TestFindClone_EmptySuffixNeverMatches(t *testing.T) {
	cache := model.Cache{{Path: "/src/weird", Remotes: []string{"git@myhost (fetch)"}}}

	_, ok := FindClone(cache, "", nil)
	assert.False(t, ok)
}

func TestCloneDestination(t *testing.T) {
	t.Chdir(t.TempDir())

	abs := func(p string) string {
		out, err := filepath.Abs(p)
		require.NoError(t, err)
		return out
	}

	tests := []struct {
		name string
		args []string
		idx  int
		want string
	}{
		{"derived from url", []string{"https://github.com/foo/bar.git"}, 0, abs("bar")},
		{"explicit directory", []string{"git@github.com:foo/bar.git", "work/bar2"}, 0, abs("work/bar2")},
		{"options after url", []string{"-q", "https://github.com/foo/bar", "--bare", "dst"}, 1, abs("dst")},
		{"absolute directory", []string{"https://github.com/foo/bar", "/tmp/x"}, 0, "/tmp/x"},
		{"depth after url", []string{"https://github.com/foo/bar", "--depth", "1"}, 0, abs("bar")},
		{"branch after url", []string{"https://github.com/foo/bar", "-b", "main"}, 0, abs("bar")},
		{"branch then directory", []string{"https://github.com/foo/bar", "--branch", "main", "dst"}, 0, abs("dst")},
		{"config then directory", []string{"https://github.com/foo/bar", "-c", "core.autocrlf=false", "dst"}, 0, abs("dst")},
		{"joined value", []string{"https://github.com/foo/bar", "--depth=1", "dst"}, 0, abs("dst")},
		{"filter and jobs", []string{"https://github.com/foo/bar", "--filter", "blob:none", "-j", "4"}, 0, abs("bar")},
		{"double dash", []string{"https://github.com/foo/bar", "--", "-odd"}, 0, abs("-odd")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CloneDestination(tt.args, tt.idx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := CloneDestination([]string{"x"}, 3)
	require.Error(t, err)
}

func TestRefreshRepository(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	tool := &fakeTool{repos: map[string]fakeRepo{
		dir: {remotes: []string{"git@github.com:foo/new.git (fetch)"}, last: ts(2030, time.January, 1, 0, 0, 0)},
	}}

	cache := cloneCache()

	out, err := RefreshRepository(context.Background(), tool, cache, dir)
	require.NoError(t, err)
	assert.Len(t, out, len(cache)+1)
	assert.Equal(t, dir, out[0].Path)
	assert.Len(t, cache, 3)
}
