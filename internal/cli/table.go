package cli

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/inovacc/pplaces/internal/giturl"
	"github.com/inovacc/pplaces/internal/model"
)

// RenderCache renders every record as a bordered table. Ages are relative
// to now, with stored timestamps read in now's location.
func RenderCache(cache model.Cache, now time.Time) string {
	if len(cache) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(cache))
	for _, repo := range cache {
		rows = append(rows, []string{repo.Path, strings.Join(RemoteURLs(repo.Remotes), "\n"), LastCommit(repo.LastCommit, now)})
	}

	t := table.New().
		Headers("PATH", "REMOTES", "LAST COMMIT").
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}

			return lipgloss.NewStyle().Padding(0, 1)
		})

	return t.String() + "\n"
}

// RemoteURLs strips the direction and any credentials from each remote
// entry and drops repeats, keeping first-seen order.
func RemoteURLs(remotes []string) []string {
	seen := make(map[string]bool, len(remotes))
	out := make([]string, 0, len(remotes))

	for _, r := range remotes {
		url, _, _ := strings.Cut(giturl.Redact(r), " ")
		if url == "" || seen[url] {
			continue
		}

		seen[url] = true
		out = append(out, url)
	}

	return out
}

// LastCommit formats a commit time with its age, or "-" when absent.
func LastCommit(ts *model.Timestamp, now time.Time) string {
	if ts == nil {
		return "-"
	}

	return ts.String() + " (" + humanize.RelTime(ts.In(now.Location()), now, "ago", "from now") + ")"
}
