package pullsync

import (
	"context"
	"fmt"
	"log/slog"

	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	"github.com/randalmurphal/pullsync/forge"
)

// DefaultConfigFilename is the control file read from .github/.
const DefaultConfigFilename = "pull.yml"

// DefaultMergeMethod is used by synthesized rules unless overridden.
const DefaultMergeMethod = MergeMethodHardReset

// Outcome is the terminal state of one resolution.
type Outcome string

const (
	OutcomeSkipped Outcome = "skipped" // no action for this repository
	OutcomeLive    Outcome = "live"    // config file committed to the repository
	OutcomeDefault Outcome = "default" // synthesized from the fork parent
)

// SkipReason explains an OutcomeSkipped.
type SkipReason string

const (
	SkipArchived      SkipReason = "archived"
	SkipNotConfigured SkipReason = "not-configured"
	SkipNoUpstream    SkipReason = "no-upstream"
)

// Resolution records which config applies to a repository and why.
type Resolution struct {
	Job     JobData     `json:"job" yaml:"job"`
	RunID   string      `json:"runId" yaml:"runId"`
	Outcome Outcome     `json:"outcome" yaml:"outcome"`
	Reason  SkipReason  `json:"reason,omitempty" yaml:"reason,omitempty"`
	Config  *PullConfig `json:"config,omitempty" yaml:"config,omitempty"`
}

// Options configures a Resolver. Values are fixed for the Resolver's lifetime.
type Options struct {
	// ConfigFilename is read from .github/ in each repository.
	// Defaults to DefaultConfigFilename.
	ConfigFilename string

	// DefaultMergeMethod is used for synthesized fork rules.
	// Defaults to DefaultMergeMethod.
	DefaultMergeMethod MergeMethod

	// Logger receives resolution diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Resolver decides which pull config applies to a repository.
// It is safe for concurrent use; resolutions share no mutable state.
type Resolver struct {
	provider forge.Provider
	live     *LiveFetcher
	synth    *Synthesizer
	logger   *slog.Logger
	run      func(flowgraph.Context, resolveState) (resolveState, error)
}

// NewResolver creates a Resolver reading from provider.
func NewResolver(provider forge.Provider, opts Options) (*Resolver, error) {
	if provider == nil {
		return nil, fmt.Errorf("forge provider is required")
	}
	if opts.ConfigFilename == "" {
		opts.ConfigFilename = DefaultConfigFilename
	}
	if opts.DefaultMergeMethod == "" {
		opts.DefaultMergeMethod = DefaultMergeMethod
	}
	if _, err := ParseMergeMethod(string(opts.DefaultMergeMethod)); err != nil {
		return nil, fmt.Errorf("default merge method: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := &Resolver{
		provider: provider,
		live:     NewLiveFetcher(provider, opts.ConfigFilename, opts.Logger),
		synth:    NewSynthesizer(provider, opts.DefaultMergeMethod, opts.Logger),
		logger:   opts.Logger,
	}

	run, err := r.compileGraph()
	if err != nil {
		return nil, fmt.Errorf("compile resolution graph: %w", err)
	}
	r.run = run

	return r, nil
}

// ResolvePullConfig returns the config that applies to job, or nil when the
// repository should be skipped. A non-nil error is either a remote failure or,
// when IsInvalidConfig reports true, a config that exists but is invalid.
func (r *Resolver) ResolvePullConfig(ctx context.Context, job JobData) (*PullConfig, error) {
	res, err := r.Resolve(ctx, job)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// Resolve runs the resolution cascade once for job:
//
//	metadata -> archived?            -> skipped
//	         -> live config found?   -> live
//	         -> not a fork?          -> skipped
//	         -> default synthesized? -> default, else skipped
//
// The synthesis step reads metadata again rather than reusing the first
// snapshot, so each step sees the repository as it is when the step runs.
func (r *Resolver) Resolve(ctx context.Context, job JobData) (*Resolution, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}

	runID, err := nanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate run ID: %w", err)
	}

	logger := r.logger.With("owner", job.Owner, "repo", job.Repo, "run_id", runID)
	logger.Info("fetching config")

	ctx = ContextWithLogger(ctx, logger)
	final, err := r.run(flowgraph.NewContext(ctx), resolveState{Job: job})
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", job, err)
	}
	if final.Err != nil {
		if IsInvalidConfig(final.Err) {
			logger.Error("invalid config", "error", final.Err)
		}
		return nil, final.Err
	}

	res := &Resolution{
		Job:     job,
		RunID:   runID,
		Outcome: final.Outcome,
		Reason:  final.Reason,
		Config:  final.Config,
	}
	logger.Info("config resolved", "outcome", res.Outcome, "reason", res.Reason)
	return res, nil
}

// readRepository fetches metadata for job. A provider that reports neither
// metadata nor an error is treated as not found.
func readRepository(ctx context.Context, provider forge.Provider, job JobData) (*forge.Repository, error) {
	repo, err := provider.Repository(ctx, job.Owner, job.Repo)
	if err != nil {
		return nil, fmt.Errorf("read repository %s: %w", job, err)
	}
	if repo == nil {
		return nil, fmt.Errorf("read repository %s: %w", job, forge.ErrRepositoryNotFound)
	}
	return repo, nil
}
