// Package store persists the repository cache.
//
// Three backends share the [Store] interface:
//   - json: a single JSON array file, the default and the interchange format
//   - bolt: an embedded bbolt key-value file
//   - sqlite: an embedded SQLite database (pure Go driver)
//
// Every backend replaces the whole cache on [Store.Write], so a reader sees
// either the previous or the new list, never a mix.
//
// Use [Open] to pick the backend configured in [model.Config], then [Load]
// on the scan path (any read failure starts from an empty cache) or
// [LoadExisting] on the show and clone paths (a missing cache is an error).
package store
