package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/pullsync"
	clierrors "github.com/randalmurphal/pullsync/errors"
)

var (
	concurrency  int
	outputFormat string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [owner/repo ...]",
	Short: "Resolve the pull config for one or more repositories",
	Long: `Resolves which pull config applies to each repository and prints it.
Without arguments, the repository is taken from the origin remote of the
current git checkout. Repositories are resolved concurrently.
Exits non-zero if any resolution fails; an invalid config file is a failure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat != "yaml" && outputFormat != "summary" {
			return fmt.Errorf("unknown output format %q (want yaml or summary)", outputFormat)
		}

		settings, err := loadSettings()
		if err != nil {
			return err
		}

		jobs, detected, err := jobsFromArgs(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		provider, err := providerFor(ctx, settings, selectPlatform(settings, detected))
		if err != nil {
			return err
		}

		opts := settings.ResolverOptions()
		opts.Logger = logger
		resolver, err := pullsync.NewResolver(provider, opts)
		if err != nil {
			return err
		}

		results := resolver.ResolveAll(ctx, jobs, concurrency)
		return writeResults(cmd.OutOrStdout(), results, outputFormat)
	},
}

func init() {
	resolveCmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "maximum concurrent resolutions (default twice the CPU count)")
	resolveCmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "output format: yaml or summary")
	rootCmd.AddCommand(resolveCmd)
}

// resolveReport is the printed form of one resolution.
type resolveReport struct {
	Repository string               `yaml:"repository"`
	Outcome    pullsync.Outcome     `yaml:"outcome"`
	Reason     pullsync.SkipReason  `yaml:"reason,omitempty"`
	RunID      string               `yaml:"runId"`
	Config     *pullsync.PullConfig `yaml:"config"`
}

// writeResults prints successful resolutions and reports failures on stderr.
func writeResults(w io.Writer, results []pullsync.BatchResult, format string) error {
	var failures []error
	var reports []resolveReport

	for _, res := range results {
		if res.Err != nil {
			failures = append(failures, clierrors.WrapResolveError(res.Err, res.Job.String()))
			continue
		}
		if format == "summary" {
			fmt.Fprintf(w, "%-40s %s\n", res.Job, outcomeLabel(res.Resolution))
			continue
		}
		reports = append(reports, resolveReport{
			Repository: res.Job.String(),
			Outcome:    res.Resolution.Outcome,
			Reason:     res.Resolution.Reason,
			RunID:      res.Resolution.RunID,
			Config:     res.Resolution.Config,
		})
	}

	if len(reports) > 0 {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, r := range reports {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if len(failures) == 0 {
		return nil
	}
	if len(results) == 1 {
		return failures[0]
	}
	for _, err := range failures {
		errorf("%v", err)
	}
	return &batchError{failed: len(failures), total: len(results), first: failures[0]}
}

// batchError summarizes failed resolutions. It unwraps to the first
// failure so the exit code reflects its class.
type batchError struct {
	failed, total int
	first         error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d resolution(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error {
	return e.first
}
