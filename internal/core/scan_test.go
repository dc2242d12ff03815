package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/pplaces/internal/git"
	"github.com/inovacc/pplaces/internal/model"
)

func scanFixture(t *testing.T) (string, *fakeTool) {
	t.Helper()

	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	c := filepath.Join(root, "c")

	for _, dir := range []string{a, b, c} {
		mkRepo(t, dir)
	}

	tool := &fakeTool{repos: map[string]fakeRepo{
		a: {remotes: []string{"git@github.com:x/a.git (fetch)", "git@github.com:x/a.git (push)"}, last: ts(2023, time.May, 1, 12, 0, 0)},
		b: {remotes: nil, last: nil},
		c: {remotes: []string{"https://github.com/x/c (fetch)"}, last: ts(2024, time.January, 2, 3, 4, 5)},
	}}

	return root, tool
}

func TestScan(t *testing.T) {
	root, tool := scanFixture(t)

	result, err := Scan(context.Background(), ScanOptions{Root: root, Tool: tool}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, root, result.Root)
	assert.Len(t, result.Found, 3)
	assert.Equal(t, []string{
		filepath.Join(root, "c"),
		filepath.Join(root, "a"),
		filepath.Join(root, "b"),
	}, result.Cache.Paths())

	// repositories without remotes still get an empty list
	b := result.Cache[result.Cache.Index(filepath.Join(root, "b"))]
	assert.NotNil(t, b.Remotes)
	assert.Nil(t, b.LastCommit)

	// two queries per repository, in walk order when sequential
	assert.Equal(t, []string{
		"remotes " + filepath.Join(root, "a"), "log " + filepath.Join(root, "a"),
		"remotes " + filepath.Join(root, "b"), "log " + filepath.Join(root, "b"),
		"remotes " + filepath.Join(root, "c"), "log " + filepath.Join(root, "c"),
	}, tool.calls)
}

func TestScan_Twice(t *testing.T) {
	root, tool := scanFixture(t)

	first, err := Scan(context.Background(), ScanOptions{Root: root, Tool: tool}, nil)
	require.NoError(t, err)

	a := filepath.Join(root, "a")
	tool.repos[a] = fakeRepo{remotes: []string{"changed"}, last: ts(2025, time.February, 1, 0, 0, 0)}

	second, err := Scan(context.Background(), ScanOptions{Root: root, Tool: tool}, first.Cache)
	require.NoError(t, err)

	assert.Len(t, second.Cache, 3)
	assert.Equal(t, a, second.Cache[0].Path)
	assert.Equal(t, []string{"changed"}, second.Cache[0].Remotes)
}

func TestScan_KeepsRecordsOutsideRoot(t *testing.T) {
	root, tool := scanFixture(t)
	existing := model.Cache{{Path: "/elsewhere", Remotes: []string{}, LastCommit: ts(2030, time.January, 1, 0, 0, 0)}}

	result, err := Scan(context.Background(), ScanOptions{Root: root, Tool: tool}, existing)
	require.NoError(t, err)

	assert.Len(t, result.Cache, 4)
	assert.Equal(t, "/elsewhere", result.Cache[0].Path)
}

func TestScan_ParallelMatchesSequential(t *testing.T) {
	root, tool := scanFixture(t)

	seq, err := Scan(context.Background(), ScanOptions{Root: root, Tool: tool, Jobs: 1}, nil)
	require.NoError(t, err)

	var (
		mu      sync.Mutex
		fetched []string
	)

	par, err := Scan(context.Background(), ScanOptions{
		Root: root,
		Tool: tool,
		Jobs: 4,
		OnFetched: func(repo model.Repository) {
			mu.Lock()
			defer mu.Unlock()
			fetched = append(fetched, repo.Path)
		},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, seq.Cache, par.Cache)
	assert.ElementsMatch(t, seq.Found, fetched)
}

func TestScan_FetchErrorAborts(t *testing.T) {
	root, tool := scanFixture(t)
	boom := errors.New("exit status 128")
	tool.repos[filepath.Join(root, "b")] = fakeRepo{err: boom}

	existing := model.Cache{{Path: "/keep"}}

	_, err := Scan(context.Background(), ScanOptions{Root: root, Tool: tool}, existing)
	require.ErrorIs(t, err, boom)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, filepath.Join(root, "b"), fetchErr.Path)

	assert.Equal(t, model.Cache{{Path: "/keep"}}, existing)
}

func TestFetchRepository_BrokenGitDir(t *testing.T) {
	cause := git.NewGitError([]string{"remote", "-v"}, "fatal: not a git repository: '/w/a/.git'", errors.New("exit status 128"))
	tool := &fakeTool{repos: map[string]fakeRepo{"/w/a": {err: cause}}}

	_, err := FetchRepository(context.Background(), tool, "/w/a")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Error(), "not a valid repository")
	require.ErrorIs(t, err, cause)
}

func TestScan_Callbacks(t *testing.T) {
	root, tool := scanFixture(t)

	var found []string

	_, err := Scan(context.Background(), ScanOptions{
		Root:    root,
		Tool:    tool,
		OnFound: func(path string) { found = append(found, path) },
	}, nil)
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestScan_CanceledContext(t *testing.T) {
	root, tool := scanFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, ScanOptions{Root: root, Tool: tool}, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScan_RootValidation(t *testing.T) {
	tool := &fakeTool{}

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := Scan(context.Background(), ScanOptions{Root: file, Tool: tool}, nil)
	var notDir *NotDirectoryError
	require.True(t, errors.As(err, &notDir))

	_, err = Scan(context.Background(), ScanOptions{Root: filepath.Join(t.TempDir(), "missing"), Tool: tool}, nil)
	require.Error(t, err)

	_, err = Scan(context.Background(), ScanOptions{Root: t.TempDir()}, nil)
	require.Error(t, err)
}

func TestResolveRoot_Relative(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	got, err := ResolveRoot(".")
	require.NoError(t, err)

	want, err := filepath.Abs(".")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
