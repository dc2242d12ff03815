package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the on-disk form of a Timestamp (no zone offset).
const TimestampLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a wall-clock date and time with no zone attached.
// The value is held in UTC purely as a container for the wall clock.
type Timestamp time.Time

// NewTimestamp builds a Timestamp from its calendar components.
func NewTimestamp(year int, month time.Month, day, hour, minute, sec int) Timestamp {
	return Timestamp(time.Date(year, month, day, hour, minute, sec, 0, time.UTC))
}

// Time returns the wall clock as a UTC time.Time.
func (ts Timestamp) Time() time.Time {
	return time.Time(ts)
}

// In reinterprets the wall clock in the given location.
func (ts Timestamp) In(loc *time.Location) time.Time {
	t := time.Time(ts)

	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// Before reports whether ts is earlier than other.
func (ts Timestamp) Before(other Timestamp) bool {
	return time.Time(ts).Before(time.Time(other))
}

func (ts Timestamp) String() string {
	return time.Time(ts).Format("2006-01-02 15:04:05")
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(ts).Format(TimestampLayout))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	t, err := time.Parse(TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}

	*ts = Timestamp(t)

	return nil
}

// Repository is the cached metadata snapshot of one local repository
type Repository struct {
	// Path is the repository root on disk; it is the unique key in a Cache
	Path string `json:"path"`

	// Remotes holds the remote list as reported by git, e.g. "git@host:a/b.git (fetch)"
	Remotes []string `json:"upstream"`

	// LastCommit is the time of the most recent commit, nil when there is none
	LastCommit *Timestamp `json:"latest_commit"`
}

// UnmarshalJSON accepts "remotes" as an alias of "upstream".
func (r *Repository) UnmarshalJSON(data []byte) error {
	type plain Repository

	aux := struct {
		*plain
		Alias []string `json:"remotes"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if r.Remotes == nil && aux.Alias != nil {
		r.Remotes = aux.Alias
	}

	return nil
}

// Cache is the full list of known repositories, most recently active first
type Cache []Repository

// Index returns the position of the record with the given path, or -1.
func (c Cache) Index(path string) int {
	for i := range c {
		if c[i].Path == path {
			return i
		}
	}

	return -1
}

// Paths returns the path of every record in order.
func (c Cache) Paths() []string {
	out := make([]string, len(c))
	for i := range c {
		out[i] = c[i].Path
	}

	return out
}
