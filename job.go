package pullsync

import (
	"fmt"
	"strings"
)

// JobData identifies the repository a scheduled job targets.
type JobData struct {
	Owner string `json:"owner" yaml:"owner"`
	Repo  string `json:"repo" yaml:"repo"`
}

// ParseJobData parses "owner/repo". The owner may contain slashes
// (GitLab subgroups); the repository is the last path segment.
func ParseJobData(s string) (JobData, error) {
	idx := strings.LastIndex(s, "/")
	if idx <= 0 || idx == len(s)-1 {
		return JobData{}, fmt.Errorf("%w: %q is not owner/repo", ErrInvalidJob, s)
	}
	return JobData{Owner: s[:idx], Repo: s[idx+1:]}, nil
}

// Validate checks that both owner and repo are set.
func (j JobData) Validate() error {
	if j.Owner == "" || j.Repo == "" {
		return fmt.Errorf("%w: got %q", ErrInvalidJob, j.String())
	}
	return nil
}

func (j JobData) String() string {
	return j.Owner + "/" + j.Repo
}
