package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/inovacc/pplaces/internal/cli"
	"github.com/inovacc/pplaces/internal/core"
	"github.com/inovacc/pplaces/internal/git"
	"github.com/inovacc/pplaces/internal/store"
)

var cloneCmd = &cobra.Command{
	Use:   "clone <git clone args...>",
	Short: "Clone a repository unless it is already on disk",
	Long: `Run git clone with the given arguments, unless a cached repository already
has a remote for the same owner/repo. The first argument starting with "http"
or "git@" is taken as the URL; https and ssh forms of the same repository match.

Every argument is passed to git clone unchanged, except the global pplaces flags
(--config-dir, --days, --log-level, --log-json). git's progress and errors are
shown; a failing clone exits with git's status.

After a successful clone the new repository is added to the cache (set
update_cache = false in the [clone] section of config.ini to disable).

Examples:
  pplaces clone https://github.com/linebender/runebender
  pplaces clone --depth 1 git@github.com:foo/bar.git work/bar`,
	DisableFlagParsing: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		global, _ := splitGlobalFlags(cmd.Root().PersistentFlags(), args)
		if err := cmd.Root().PersistentFlags().Parse(global); err != nil {
			return err
		}

		return cmd.Root().PersistentPreRunE(cmd, args)
	},
	RunE: runClone,
}

func init() {
	rootCmd.AddCommand(cloneCmd)
}

func runClone(cmd *cobra.Command, args []string) error {
	_, args = splitGlobalFlags(cmd.Root().PersistentFlags(), args)

	if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
		return cmd.Help()
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	cache, err := store.LoadExisting(st)
	if err != nil {
		return err
	}

	client, err := git.NewClient(cfg.Git.Binary, logger)
	if err != nil {
		return err
	}

	client.Stderr = cmd.ErrOrStderr()

	result, err := core.CloneGuard(cmd.Context(), args, cache, client, logger)
	if err != nil {
		return err
	}

	if result.AlreadyCloned() {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "already cloned at %s\n", result.ExistingPath)
		return nil
	}

	if result.Destination == "" || !cfg.Clone.UpdateCache {
		return nil
	}

	if !git.IsRepository(result.Destination) {
		logger.Debug("clone destination is not a repository, cache unchanged", "path", result.Destination)
		return nil
	}

	tool, err := newTool(cfg, logger)
	if err != nil {
		return err
	}

	updated, err := core.RefreshRepository(cmd.Context(), tool, cache, result.Destination)
	if err != nil {
		logger.Warn("cloned, but could not add the repository to the cache", "path", result.Destination, "error", err)
		return nil
	}

	if err := st.Write(updated); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cli.Success("added "+cli.Highlight(result.Suffix)+" to the cache: "+cli.Dim(result.Destination)))

	return nil
}

// splitGlobalFlags separates the persistent pplaces flags found in args
// from everything else, which keeps its order.
func splitGlobalFlags(fs *pflag.FlagSet, args []string) (global, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}

		flag := lookupFlag(fs, arg)
		if flag == nil {
			rest = append(rest, arg)
			continue
		}

		global = append(global, arg)

		if !strings.Contains(arg, "=") && flag.Value.Type() != "bool" && i+1 < len(args) {
			i++
			global = append(global, args[i])
		}
	}

	return global, rest
}

func lookupFlag(fs *pflag.FlagSet, arg string) *pflag.Flag {
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		name, _, _ := strings.Cut(arg[2:], "=")
		return fs.Lookup(name)
	case strings.HasPrefix(arg, "-") && len(arg) == 2:
		return fs.ShorthandLookup(arg[1:])
	default:
		return nil
	}
}
