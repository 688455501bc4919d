package testutil

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
)

func TestFakeGitHub(t *testing.T) {
	fake := NewFakeGitHub(t)
	fake.AddRepo("me", "widgets", RepoOptions{Parent: "org/widgets", ParentDefaultBranch: "trunk"})
	fake.AddFile("me", "widgets", ".github/pull.yml", "version: \"1\"\n")

	ctx := TestContext(t)
	client := fake.Client()

	repo, _, err := client.Repositories.Get(ctx, "me", "widgets")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !repo.GetFork() || repo.GetParent().GetOwner().GetLogin() != "org" || repo.GetParent().GetDefaultBranch() != "trunk" {
		t.Errorf("repo = %+v", repo)
	}

	file, _, _, err := client.Repositories.GetContents(ctx, "me", "widgets", ".github/pull.yml", nil)
	if err != nil {
		t.Fatalf("GetContents() error = %v", err)
	}
	content, err := file.GetContent()
	if err != nil || content != "version: \"1\"\n" {
		t.Errorf("content = %q, %v", content, err)
	}

	_, resp, err := client.Repositories.Get(ctx, "me", "missing")
	if err == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing repo: resp = %v, err = %v", resp, err)
	}

	if got := len(fake.Requests()); got != 3 {
		t.Errorf("requests = %d, want 3", got)
	}
}

func TestFakeGitHub_FailNext(t *testing.T) {
	fake := NewFakeGitHub(t)
	fake.AddRepo("me", "widgets", RepoOptions{})
	fake.FailNext("me", "widgets", 1)

	ctx := TestContext(t)
	client := fake.Client()

	if _, _, err := client.Repositories.Get(ctx, "me", "widgets"); err == nil {
		t.Error("first request should fail")
	}
	if _, _, err := client.Repositories.Get(ctx, "me", "widgets"); err != nil {
		t.Errorf("second request error = %v", err)
	}
}

func TestInitRepo(t *testing.T) {
	dir := InitRepo(t, "git@github.com:me/widgets.git")
	CommitFile(t, dir, "nested/file.txt", "hello")

	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("PlainOpen() error = %v", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		t.Fatalf("Remote() error = %v", err)
	}
	if urls := remote.Config().URLs; len(urls) != 1 || urls[0] != "git@github.com:me/widgets.git" {
		t.Errorf("URLs = %v", urls)
	}

	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil || commit.Message != "add nested/file.txt" {
		t.Errorf("commit = %v, %v", commit, err)
	}
}

func TestTestLogger(t *testing.T) {
	logger, buf := TestLogger(t)
	logger.Debug("fetching config", "repo", "widgets")

	if !strings.Contains(buf.String(), `"repo":"widgets"`) {
		t.Errorf("log output = %q", buf.String())
	}
}
