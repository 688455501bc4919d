package pullsync

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/pullsync/forge"
)

func TestSynthesizer_Fork(t *testing.T) {
	f := newFakeForge()
	f.repos["me/widgets"] = forkOf("upstream-org", "main")

	cfg, err := NewSynthesizer(f.provider(), MergeMethodHardReset, discardLogger()).Synthesize(context.Background(), testJob)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, SchemaVersion, cfg.Version)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, SyncRule{
		Base:              "main",
		Upstream:          "upstream-org:main",
		MergeMethod:       MergeMethodHardReset,
		Assignees:         []string{},
		Reviewers:         []string{},
		ConflictReviewers: []string{},
	}, cfg.Rules[0])
}

func TestSynthesizer_UsesImmediateParent(t *testing.T) {
	f := newFakeForge()
	// A fork of a fork: only the immediate parent is reported and used.
	f.repos["me/widgets"] = forkOf("middle-org", "develop")

	cfg, err := NewSynthesizer(f.provider(), MergeMethodMerge, discardLogger()).Synthesize(context.Background(), testJob)
	require.NoError(t, err)
	assert.Equal(t, "middle-org:develop", cfg.Rules[0].Upstream)
	assert.Equal(t, "develop", cfg.Rules[0].Base)
}

func TestSynthesizer_NotEligible(t *testing.T) {
	tests := []struct {
		name string
		repo *forge.Repository
	}{
		{"not a fork", &forge.Repository{}},
		{"not a fork but parent set", &forge.Repository{Parent: forkOf("o", "main").Parent}},
		{"fork without parent", &forge.Repository{Fork: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeForge()
			f.repos["me/widgets"] = tt.repo

			cfg, err := NewSynthesizer(f.provider(), MergeMethodMerge, discardLogger()).Synthesize(context.Background(), testJob)
			require.NoError(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestSynthesizer_InvalidResultIsFatal(t *testing.T) {
	f := newFakeForge()
	f.repos["me/widgets"] = forkOf("upstream-org", "main")

	_, err := NewSynthesizer(f.provider(), MergeMethod("bogus"), discardLogger()).Synthesize(context.Background(), testJob)
	assert.ErrorIs(t, err, ErrInvalidDefaultConfig)
	assert.True(t, IsInvalidConfig(err))
	assert.NotEmpty(t, ValidationErrors(err))
}

func TestSynthesizer_RemoteError(t *testing.T) {
	boom := errors.New("rate limited")
	f := newFakeForge()
	f.repoErr = boom

	_, err := NewSynthesizer(f.provider(), MergeMethodMerge, discardLogger()).Synthesize(context.Background(), testJob)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsInvalidConfig(err))
}

func TestSynthesizer_NilMetadata(t *testing.T) {
	provider := &forge.MockProvider{
		RepositoryFunc: func(context.Context, string, string) (*forge.Repository, error) { return nil, nil },
	}

	cfg, err := NewSynthesizer(provider, MergeMethodMerge, discardLogger()).Synthesize(context.Background(), testJob)
	assert.ErrorIs(t, err, forge.ErrRepositoryNotFound)
	assert.Nil(t, cfg)
}

func TestSynthesizer_LogsMissingUpstreamWithJob(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f := newFakeForge()
	// What a GitLab fork reports when its parent project is not visible.
	f.repos["me/widgets"] = &forge.Repository{Owner: "me", Name: "widgets", Fork: true}

	cfg, err := NewSynthesizer(f.provider(), MergeMethodMerge, logger).Synthesize(context.Background(), testJob)
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, buf.String(), "fork has no resolvable upstream")
	assert.Contains(t, buf.String(), "owner=me")
	assert.Contains(t, buf.String(), "repo=widgets")
}
