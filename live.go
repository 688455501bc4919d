package pullsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/randalmurphal/pullsync/forge"
)

const (
	// controlDir holds the config file inside a repository.
	controlDir = ".github"

	// orgConfigRepo is the owner-wide repository consulted when a
	// repository has no config file of its own.
	orgConfigRepo = ".github"
)

// LiveFetcher reads the config file committed to a repository.
type LiveFetcher struct {
	provider forge.Provider
	path     string
	logger   *slog.Logger
}

// NewLiveFetcher creates a fetcher for .github/<filename>.
// If logger is nil, uses the default slog logger.
func NewLiveFetcher(provider forge.Provider, filename string, logger *slog.Logger) *LiveFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LiveFetcher{
		provider: provider,
		path:     path.Join(controlDir, filename),
		logger:   logger,
	}
}

// Path returns the control-file path read from each repository.
func (f *LiveFetcher) Path() string {
	return f.path
}

// Fetch returns the validated live config for job.
//
// A missing file, or one without a version, yields (nil, nil). A file that
// exists but fails validation yields an error wrapping ErrInvalidConfig;
// callers must not fall back to a default config in that case.
func (f *LiveFetcher) Fetch(ctx context.Context, job JobData) (*PullConfig, error) {
	logger := loggerFrom(ctx, f.logger, job)
	logger.Debug("fetching live config", "path", f.path)

	raw, err := f.load(ctx, job)
	if err != nil {
		return nil, err
	}

	if !hasVersion(raw) {
		logger.Warn("no config found", "path", f.path)
		return nil, nil
	}
	logger.Info("config found", "config", raw)

	cfg, err := Validate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrInvalidConfig, job, f.path, err)
	}
	return cfg, nil
}

// load reads the repository's file, falling back to the owner's .github
// repository, and applies any _extends chain.
func (f *LiveFetcher) load(ctx context.Context, job JobData) (map[string]any, error) {
	source := job.Repo
	raw, err := f.read(ctx, job.Owner, source, f.path)
	if err != nil {
		return nil, err
	}

	if raw == nil && job.Repo != orgConfigRepo {
		source = orgConfigRepo
		raw, err = f.read(ctx, job.Owner, source, f.path)
		if err != nil {
			return nil, err
		}
		if raw != nil {
			loggerFrom(ctx, f.logger, job).Debug("using owner config", "config_repo", orgConfigRepo)
		}
	}

	if raw == nil {
		return nil, nil
	}

	seen := map[string]bool{fileRef{job.Owner, source, f.path}.String(): true}
	return f.extend(ctx, job.Owner, f.path, raw, seen)
}

// read fetches one file. Malformed YAML is an authoring error and is
// reported as ErrInvalidConfig; everything else passes through.
func (f *LiveFetcher) read(ctx context.Context, owner, repo, filePath string) (map[string]any, error) {
	raw, err := f.provider.ConfigFile(ctx, owner, repo, filePath)
	if err != nil {
		if errors.Is(err, forge.ErrMalformedFile) {
			return nil, fmt.Errorf("%w: %s/%s: %w", ErrInvalidConfig, owner, repo, err)
		}
		return nil, fmt.Errorf("read %s from %s/%s: %w", filePath, owner, repo, err)
	}
	return raw, nil
}

// hasVersion reports whether raw carries a non-empty version field.
// Files without one are treated as absent rather than invalid.
func hasVersion(raw map[string]any) bool {
	switch v := raw["version"].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}
