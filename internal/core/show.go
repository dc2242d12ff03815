package core

import (
	"sort"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/inovacc/pplaces/internal/model"
)

// FilterRecent keeps the records whose last commit is at most days old at
// now. Timestamps are read as wall-clock time in now's location. Records
// without a commit are dropped. days == 0 means no limit and returns cache
// unfiltered.
func FilterRecent(cache model.Cache, days int, now time.Time) model.Cache {
	if days == 0 {
		return cache
	}

	window := time.Duration(days) * 24 * time.Hour
	out := make(model.Cache, 0, len(cache))

	for _, repo := range cache {
		if repo.LastCommit == nil {
			continue
		}

		if now.Sub(repo.LastCommit.In(now.Location())) <= window {
			out = append(out, repo)
		}
	}

	return out
}

type cachePaths model.Cache

func (c cachePaths) String(i int) string { return c[i].Path }
func (c cachePaths) Len() int            { return len(c) }

// FilterPaths keeps the records whose path fuzzy-matches query, in cache
// order. An empty query returns cache unfiltered.
func FilterPaths(cache model.Cache, query string) model.Cache {
	if query == "" {
		return cache
	}

	matches := fuzzy.FindFrom(query, cachePaths(cache))

	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}

	sort.Ints(idx)

	out := make(model.Cache, 0, len(idx))
	for _, i := range idx {
		out = append(out, cache[i])
	}

	return out
}
