package core

import (
	"sort"

	"github.com/inovacc/pplaces/internal/model"
)

// Merge replaces the record with the same path as repo, or appends repo.
// Records for paths that are gone from disk are kept.
//
// TODO: add a scan --prune flag that drops records under the root with no .git directory.
func Merge(cache model.Cache, repo model.Repository) model.Cache {
	if i := cache.Index(repo.Path); i >= 0 {
		cache[i] = repo
		return cache
	}

	return append(cache, repo)
}

// SortByLastCommit orders the cache most recent first. Records without a
// commit go last; ties keep their relative order.
func SortByLastCommit(cache model.Cache) {
	sort.SliceStable(cache, func(i, j int) bool {
		a, b := cache[i].LastCommit, cache[j].LastCommit
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return b.Before(*a)
		}
	})
}
