package git

import (
	"strings"
	"time"

	"github.com/inovacc/pplaces/internal/model"
)

// CommitTimeLayout matches git's %ci format.
const CommitTimeLayout = "2006-01-02 15:04:05 -0700"

// ParseRemotes parses the output of `git remote -v`.
// Each line is "<name>\t<url> (<direction>)"; the part after the tab is kept,
// fetch and push entries alike. Blank lines are dropped.
func ParseRemotes(out string) ([]string, error) {
	remotes := make([]string, 0)

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		_, rest, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, &ParseError{What: "remote -v", Input: line, Reason: "missing tab separator"}
		}

		remotes = append(remotes, rest)
	}

	return remotes, nil
}

// ParseCommitTime parses `git log -n 1 --format=%ci` output.
// The zone offset is validated and then dropped; empty output means no commits.
func ParseCommitTime(out string) (*model.Timestamp, error) {
	s := strings.TrimSpace(out)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(CommitTimeLayout, s)
	if err != nil {
		return nil, &ParseError{What: "log --format=%ci", Input: s, Reason: err.Error()}
	}

	ts := model.NewTimestamp(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())

	return &ts, nil
}
