package pullsync

import (
	"fmt"
	"slices"
	"strings"
)

// SchemaVersion is the only supported config file version.
const SchemaVersion = "1"

// Defaults applied when a config omits the field.
const (
	DefaultLabel         = ":arrow_heading_down: pull"
	DefaultConflictLabel = "merge-conflict"
)

// MergeMethod specifies how a sync pull request is merged.
type MergeMethod string

const (
	MergeMethodNone      MergeMethod = "none"
	MergeMethodMerge     MergeMethod = "merge"
	MergeMethodSquash    MergeMethod = "squash"
	MergeMethodRebase    MergeMethod = "rebase"
	MergeMethodHardReset MergeMethod = "hardreset"
)

// MergeMethods lists every accepted merge method.
var MergeMethods = []MergeMethod{
	MergeMethodNone,
	MergeMethodMerge,
	MergeMethodSquash,
	MergeMethodRebase,
	MergeMethodHardReset,
}

// ParseMergeMethod returns the MergeMethod named by s.
func ParseMergeMethod(s string) (MergeMethod, error) {
	for _, m := range MergeMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown merge method %q (want one of %s)", s, mergeMethodList())
}

func mergeMethodList() string {
	names := make([]string, len(MergeMethods))
	for i, m := range MergeMethods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// PullConfig is the resolved sync configuration for a repository.
// Values returned by Validate are complete: defaults are filled in.
type PullConfig struct {
	Version       string     `yaml:"version" json:"version"`
	Rules         []SyncRule `yaml:"rules" json:"rules"`
	Label         string     `yaml:"label" json:"label"`
	ConflictLabel string     `yaml:"conflictLabel" json:"conflictLabel"`
}

// SyncRule keeps one local branch in sync with one upstream branch.
type SyncRule struct {
	Base              string      `yaml:"base" json:"base"`
	Upstream          string      `yaml:"upstream" json:"upstream"`
	MergeMethod       MergeMethod `yaml:"mergeMethod" json:"mergeMethod"`
	MergeUnstable     bool        `yaml:"mergeUnstable" json:"mergeUnstable"`
	Assignees         []string    `yaml:"assignees" json:"assignees"`
	Reviewers         []string    `yaml:"reviewers" json:"reviewers"`
	ConflictReviewers []string    `yaml:"conflictReviewers" json:"conflictReviewers"`
}

// UpstreamRef splits Upstream into owner and branch.
// A bare branch name refers to the repository itself and yields an empty owner.
func (r SyncRule) UpstreamRef() (owner, branch string) {
	if owner, branch, found := strings.Cut(r.Upstream, ":"); found {
		return owner, branch
	}
	return "", r.Upstream
}

// Clone returns a deep copy of c.
func (c *PullConfig) Clone() *PullConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.Rules = make([]SyncRule, len(c.Rules))
	for i, r := range c.Rules {
		r.Assignees = slices.Clone(r.Assignees)
		r.Reviewers = slices.Clone(r.Reviewers)
		r.ConflictReviewers = slices.Clone(r.ConflictReviewers)
		out.Rules[i] = r
	}
	return &out
}
