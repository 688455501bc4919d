package pullsync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/pullsync/forge"
)

// Synthesizer derives a config for forks that have no config file.
type Synthesizer struct {
	provider    forge.Provider
	mergeMethod MergeMethod
	logger      *slog.Logger
}

// NewSynthesizer creates a synthesizer whose rules use mergeMethod.
// If logger is nil, uses the default slog logger.
func NewSynthesizer(provider forge.Provider, mergeMethod MergeMethod, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		provider:    provider,
		mergeMethod: mergeMethod,
		logger:      logger,
	}
}

// Synthesize reads repository metadata and, for a fork whose immediate parent
// has both an owner and a default branch, returns a one-rule config that
// mirrors the parent's default branch into the branch of the same name.
// Anything short of that yields (nil, nil).
func (s *Synthesizer) Synthesize(ctx context.Context, job JobData) (*PullConfig, error) {
	logger := loggerFrom(ctx, s.logger, job)
	logger.Debug("fetching default config")

	repo, err := readRepository(ctx, s.provider, job)
	if err != nil {
		return nil, err
	}

	if !repo.Fork {
		return nil, nil
	}
	upstreamOwner, defaultBranch, ok := repo.Parent.Upstream()
	if !ok {
		logger.Debug("fork has no resolvable upstream")
		return nil, nil
	}

	logger.Debug("using default config",
		"base", defaultBranch,
		"upstream", upstreamOwner+":"+defaultBranch,
	)

	// Built as an untyped object so it passes the same validation as a file.
	raw := map[string]any{
		"version": SchemaVersion,
		"rules": []any{
			map[string]any{
				"base":        defaultBranch,
				"upstream":    upstreamOwner + ":" + defaultBranch,
				"mergeMethod": string(s.mergeMethod),
			},
		},
	}

	cfg, err := Validate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefaultConfig, job, err)
	}
	return cfg, nil
}
