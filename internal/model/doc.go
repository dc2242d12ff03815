// Package model defines the data structures used throughout pplaces.
//
// # Repository
//
// The [Repository] struct is the cached snapshot of one local repository:
//
//	type Repository struct {
//	    Path       string     // Repository root, unique key
//	    Remotes    []string   // "url (fetch)" / "url (push)" lines from git
//	    LastCommit *Timestamp // Most recent commit, nil when there is none
//	}
//
// A [Cache] is an ordered list of repositories. It is persisted as a JSON array
// whose objects use the keys "path", "upstream" and "latest_commit".
//
// # Config
//
// The [Config] struct holds application configuration. It is loaded from an
// optional config.ini in the configuration directory by [LoadConfig].
package model
