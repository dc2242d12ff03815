package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inovacc/pplaces/internal/cli"
	"github.com/inovacc/pplaces/internal/core"
	"github.com/inovacc/pplaces/internal/store"
)

var (
	scanJobs       int
	scanExclude    []string
	scanNoProgress bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Find repositories under a directory and update the cache",
	Long: `Walk a directory tree, record every git repository found (a directory that
directly contains a .git directory) and update the cache. Repositories inside
another repository are not visited.

Each repository is queried for its remotes and its last commit time. A read
error anywhere in the tree, or a failing git query, aborts the scan without
touching the cache.

After the scan, the repositories with a commit in the last --days days are
printed, most recent first.

Examples:
  pplaces scan ~/src
  pplaces scan ~/src --days 30
  pplaces scan ~ --exclude node_modules,vendor --jobs 8`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().IntVarP(&scanJobs, "jobs", "j", 1, "Repositories to query in parallel")
	scanCmd.Flags().StringSliceVar(&scanExclude, "exclude", nil, "Directory names to skip (comma-separated)")
	scanCmd.Flags().BoolVar(&scanNoProgress, "no-progress", false, "Disable the progress display")
}

func runScan(cmd *cobra.Command, args []string) error {
	root, err := expandPath(args[0])
	if err != nil {
		return err
	}

	tool, err := newTool(cfg, logger)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	opts := core.ScanOptions{
		Root:    root,
		Tool:    tool,
		Jobs:    cfg.Scan.Jobs,
		Exclude: cfg.Scan.Exclude,
		Logger:  logger,
	}

	if cmd.Flags().Changed("jobs") {
		opts.Jobs = scanJobs
	}

	if cmd.Flags().Changed("exclude") {
		opts.Exclude = scanExclude
	}

	cache := store.Load(st, logger)

	var result *core.ScanResult

	if showProgress() {
		result, err = cli.RunScan(cmd.Context(), opts, cache, os.Stderr)
	} else {
		result, err = core.Scan(cmd.Context(), opts, cache)
	}

	if err != nil {
		return err
	}

	if err := st.Write(result.Cache); err != nil {
		return err
	}

	printRecent(cmd.OutOrStdout(), result.Cache, cfg.Show.Days)

	return nil
}

// showProgress reports whether the spinner can draw without mixing with log lines.
func showProgress() bool {
	if scanNoProgress || flagLogJSON {
		return false
	}

	if flagLogLevel == "debug" || flagLogLevel == "info" {
		return false
	}

	return isTerminal(os.Stderr)
}
