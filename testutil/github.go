package testutil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v57/github"
)

// FakeGitHub serves the slice of the GitHub REST API that pullsync reads:
// repository metadata and file contents. Enterprise-style /api/v3 paths
// are accepted too.
type FakeGitHub struct {
	Server *httptest.Server

	mu       sync.Mutex
	repos    map[string]*github.Repository
	files    map[string]string
	failures map[string]int
	requests []string
}

// RepoOptions describes a repository registered with AddRepo.
type RepoOptions struct {
	Archived bool

	// Parent is "owner/name" for forks; empty for source repositories.
	Parent              string
	ParentDefaultBranch string
}

// NewFakeGitHub starts a fake API server that is closed when the test ends.
func NewFakeGitHub(t *testing.T) *FakeGitHub {
	t.Helper()

	f := &FakeGitHub{
		repos:    make(map[string]*github.Repository),
		files:    make(map[string]string),
		failures: make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the API base URL, with a trailing slash.
func (f *FakeGitHub) URL() string {
	return f.Server.URL + "/"
}

// Client returns a go-github client pointed at the fake server.
func (f *FakeGitHub) Client() *github.Client {
	client := github.NewClient(f.Server.Client())
	client.BaseURL, _ = url.Parse(f.URL())
	return client
}

// AddRepo registers owner/name.
func (f *FakeGitHub) AddRepo(owner, name string, opts RepoOptions) {
	f.mu.Lock()
	defer f.mu.Unlock()

	repo := &github.Repository{
		Name:          github.String(name),
		FullName:      github.String(owner + "/" + name),
		Owner:         &github.User{Login: github.String(owner)},
		Archived:      github.Bool(opts.Archived),
		Fork:          github.Bool(opts.Parent != ""),
		DefaultBranch: github.String("main"),
	}
	if opts.Parent != "" {
		parentOwner, parentName, _ := strings.Cut(opts.Parent, "/")
		repo.Parent = &github.Repository{
			Name:     github.String(parentName),
			FullName: github.String(opts.Parent),
			Owner:    &github.User{Login: github.String(parentOwner)},
		}
		if opts.ParentDefaultBranch != "" {
			repo.Parent.DefaultBranch = github.String(opts.ParentDefaultBranch)
		}
	}
	f.repos[owner+"/"+name] = repo
}

// AddFile serves content at path in owner/repo.
func (f *FakeGitHub) AddFile(owner, repo, path, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[owner+"/"+repo+":"+path] = content
}

// FailNext makes the next n requests for owner/repo metadata return 502.
func (f *FakeGitHub) FailNext(owner, repo string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[owner+"/"+repo] = n
}

// Requests returns the request paths served so far, in order.
func (f *FakeGitHub) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeGitHub) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v3")

	f.mu.Lock()
	f.requests = append(f.requests, path)
	f.mu.Unlock()

	rest, ok := strings.CutPrefix(path, "/repos/")
	if !ok || r.Method != http.MethodGet {
		notFound(w)
		return
	}

	parts := strings.SplitN(rest, "/", 4)
	switch {
	case len(parts) == 2:
		f.serveRepo(w, parts[0]+"/"+parts[1])
	case len(parts) == 4 && parts[2] == "contents":
		f.serveFile(w, parts[0]+"/"+parts[1], parts[3])
	default:
		notFound(w)
	}
}

func (f *FakeGitHub) serveRepo(w http.ResponseWriter, fullName string) {
	f.mu.Lock()
	repo, ok := f.repos[fullName]
	failing := f.failures[fullName] > 0
	if failing {
		f.failures[fullName]--
	}
	f.mu.Unlock()

	if failing {
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, repo)
}

func (f *FakeGitHub) serveFile(w http.ResponseWriter, fullName, path string) {
	f.mu.Lock()
	content, ok := f.files[fullName+":"+path]
	f.mu.Unlock()

	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, &github.RepositoryContent{
		Type:     github.String("file"),
		Path:     github.String(path),
		Encoding: github.String("base64"),
		Content:  github.String(base64.StdEncoding.EncodeToString([]byte(content))),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"message":"Not Found"}`))
}
