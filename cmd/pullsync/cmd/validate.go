package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/pullsync"
	clierrors "github.com/randalmurphal/pullsync/errors"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a pull config file against the schema",
	Long: `Validates a local pull config file the same way a committed
.github/pull.yml is validated during resolution. Every violation is
reported. _extends references are not followed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := validateFile(args[0])
		if err != nil {
			return err
		}

		info("%s is valid: %d rule(s)", args[0], len(cfg.Rules))
		for _, rule := range cfg.Rules {
			info("  %s <- %s (%s)", rule.Base, rule.Upstream, rule.MergeMethod)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateFile decodes path as YAML and validates it.
func validateFile(path string) (*pullsync.PullConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &clierrors.CLIError{
			Err:     fmt.Errorf("%w: %w", pullsync.ErrInvalidConfig, err),
			Message: fmt.Sprintf("%s is not valid YAML.", path),
			Details: err.Error(),
		}
	}

	cfg, err := pullsync.Validate(raw)
	if err != nil {
		return nil, &clierrors.CLIError{
			Err:     fmt.Errorf("%w: %w", pullsync.ErrInvalidConfig, err),
			Message: fmt.Sprintf("%s is invalid.", path),
			Details: "  - " + strings.Join(pullsync.ValidationErrors(err), "\n  - "),
		}
	}
	return cfg, nil
}
