package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/inovacc/pplaces/internal/cli"
	"github.com/inovacc/pplaces/internal/core"
	"github.com/inovacc/pplaces/internal/encoding"
	"github.com/inovacc/pplaces/internal/store"
)

var (
	showFull  bool
	showPaths bool
	showJSON  bool
)

var showCmd = &cobra.Command{
	Use:   "show [query]",
	Short: "List cached repositories",
	Long: `List the repositories recorded by the last scans, most recent first.

By default only repositories with a commit in the last --days days are listed,
one path per line. An optional query fuzzy-matches the paths.

Examples:
  pplaces show
  pplaces show --days 30
  pplaces show --full
  pplaces show api --paths
  cd "$(pplaces show runebender | head -n1)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showFull, "full", false, "Show every record as a table")
	showCmd.Flags().BoolVar(&showPaths, "paths", false, "Print every cached path, ignoring --days")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the cache as JSON")
	showCmd.MarkFlagsMutuallyExclusive("full", "paths", "json")
}

func runShow(cmd *cobra.Command, args []string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	cache, err := store.LoadExisting(st)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		cache = core.FilterPaths(cache, args[0])
	}

	out := cmd.OutOrStdout()

	switch {
	case showJSON:
		data, err := encoding.ToJSONIndent(cache)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(out, string(data))
	case showFull:
		_, _ = fmt.Fprint(out, cli.RenderCache(cache, time.Now()))
	case showPaths:
		printPaths(out, cache)
	default:
		printRecent(out, cache, cfg.Show.Days)
	}

	return nil
}
