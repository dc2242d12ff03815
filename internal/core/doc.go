// Package core provides the business logic layer for pplaces.
//
// This package contains the scan, merge, filter and clone-guard operations,
// separated from UI concerns. Functions here return errors instead of
// printing, and take their collaborators ([git.Tool], [Cloner], loggers)
// explicitly so tests can substitute fakes.
//
// # Scan
//
// [Scan] walks a tree with [DiscoverRepositories], fetches each hit with
// [FetchRepository], and folds the records into the cache with [Merge]
// followed by [SortByLastCommit].
//
// # Clone guard
//
// [CloneGuard] reduces the clone URL to its owner/repo suffix and refuses
// to clone when any cached remote reduces to the same suffix.
package core
