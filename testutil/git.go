package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// InitRepo creates a temporary git repository. When originURL is not
// empty it is added as the origin remote.
func InitRepo(t *testing.T, originURL string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("git init failed: %v", err)
	}

	if originURL != "" {
		_, err := repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{originURL},
		})
		if err != nil {
			t.Fatalf("adding origin failed: %v", err)
		}
	}

	return dir
}

// CommitFile writes content to path in the repository at repoDir and commits it.
func CommitFile(t *testing.T, repoDir, path, content string) {
	t.Helper()

	fullPath := filepath.Join(repoDir, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}

	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		t.Fatalf("git open failed: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree failed: %v", err)
	}
	if _, err := wt.Add(path); err != nil {
		t.Fatalf("git add %s failed: %v", path, err)
	}

	_, err = wt.Commit("add "+path, &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@test.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("git commit failed: %v", err)
	}
}
