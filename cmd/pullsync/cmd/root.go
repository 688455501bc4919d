package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configFilename string
	mergeMethod    string
	providerName   string
	retries        int
	verbose        bool
	quiet          bool
)

// logger is installed by the root command before any subcommand runs.
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "pullsync",
	Short: "Resolve which upstream-sync config applies to a repository",
	Long: `pullsync decides which pull config governs keeping a repository in sync
with its upstream. A committed .github/pull.yml wins; a fork without one
gets a synthesized rule tracking its parent's default branch; archived
and unconfigured repositories are skipped.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(verbose, quiet)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pullsync %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
		fmt.Fprintf(out, "  schema:  v1\n")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFilename, "config-filename", "", "control file name under .github/ (default pull.yml)")
	rootCmd.PersistentFlags().StringVar(&mergeMethod, "merge-method", "", "merge method for synthesized fork configs (default hardreset)")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "forge platform: github or gitlab")
	rootCmd.PersistentFlags().IntVar(&retries, "retries", 2, "retries for transient GitHub API failures")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log resolution details")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "log errors only")

	rootCmd.AddCommand(versionCmd)
}

func newLogger(verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		errorf("%v", err)
		return err
	}
	return nil
}
