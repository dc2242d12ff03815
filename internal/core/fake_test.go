package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/inovacc/pplaces/internal/git"
	"github.com/inovacc/pplaces/internal/model"
)

type fakeRepo struct {
	remotes []string
	last    *model.Timestamp
	err     error
}

// fakeTool answers from a fixed table keyed by repository path.
type fakeTool struct {
	mu    sync.Mutex
	repos map[string]fakeRepo
	calls []string
}

var _ git.Tool = (*fakeTool)(nil)

func (f *fakeTool) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call)
}

func (f *fakeTool) Remotes(_ context.Context, path string) ([]string, error) {
	f.record("remotes " + path)

	r, ok := f.repos[path]
	if !ok {
		return nil, errors.New("unknown repository " + path)
	}

	if r.err != nil {
		return nil, r.err
	}

	return r.remotes, nil
}

func (f *fakeTool) LastCommit(_ context.Context, path string) (*model.Timestamp, error) {
	f.record("log " + path)

	r, ok := f.repos[path]
	if !ok {
		return nil, errors.New("unknown repository " + path)
	}

	return r.last, nil
}

type fakeCloner struct {
	calls [][]string
	err   error
}

func (f *fakeCloner) Clone(_ context.Context, args []string) error {
	f.calls = append(f.calls, args)
	return f.err
}

func ts(y int, m time.Month, d, h, mi, s int) *model.Timestamp {
	t := model.NewTimestamp(y, m, d, h, mi, s)
	return &t
}
