package pullsync

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/randalmurphal/pullsync/forge"
)

// fakeForge is an in-memory forge keyed by "owner/repo" and "owner/repo:path".
type fakeForge struct {
	mu        sync.Mutex
	repos     map[string]*forge.Repository
	files     map[string]map[string]any
	repoErr   error
	fileErr   error
	repoReads int
	fileReads []string

	// onRepoRead, when set, replaces the repos lookup and receives the read count.
	onRepoRead func(n int) *forge.Repository
}

func newFakeForge() *fakeForge {
	return &fakeForge{
		repos: make(map[string]*forge.Repository),
		files: make(map[string]map[string]any),
	}
}

func (f *fakeForge) provider() *forge.MockProvider {
	return &forge.MockProvider{
		RepositoryFunc: func(_ context.Context, owner, repo string) (*forge.Repository, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.repoReads++
			if f.repoErr != nil {
				return nil, f.repoErr
			}
			if f.onRepoRead != nil {
				return f.onRepoRead(f.repoReads), nil
			}
			if r, ok := f.repos[owner+"/"+repo]; ok {
				return r, nil
			}
			return nil, forge.ErrRepositoryNotFound
		},
		ConfigFileFunc: func(_ context.Context, owner, repo, path string) (map[string]any, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			key := owner + "/" + repo + ":" + path
			f.fileReads = append(f.fileReads, key)
			if f.fileErr != nil {
				return nil, f.fileErr
			}
			return f.files[key], nil
		},
	}
}

func (f *fakeForge) reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.repoReads
}

func strPtr(s string) *string { return &s }

func forkOf(owner, branch string) *forge.Repository {
	return &forge.Repository{
		Fork:   true,
		Parent: &forge.Parent{Owner: strPtr(owner), DefaultBranch: strPtr(branch)},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
