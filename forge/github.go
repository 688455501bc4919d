package forge

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubProvider implements Provider for GitHub repositories.
type GitHubProvider struct {
	client *github.Client
}

// NewGitHubProvider creates a GitHub provider for github.com.
// token is a personal access token or GitHub App installation token.
func NewGitHubProvider(token string) (*GitHubProvider, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub: %w", ErrTokenRequired)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return NewGitHubProviderFromTokenSource(context.Background(), ts, "")
}

// NewGitHubProviderFromTokenSource creates a GitHub provider that authenticates
// every request with tokens from ts. baseURL selects a GitHub Enterprise
// instance (e.g. "https://github.example.com/api/v3/"); empty means github.com.
func NewGitHubProviderFromTokenSource(ctx context.Context, ts oauth2.TokenSource, baseURL string) (*GitHubProvider, error) {
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("set GitHub base URL: %w", err)
		}
	}

	return NewGitHubProviderWithClient(client), nil
}

// NewGitHubProviderWithClient wraps an already configured client.
func NewGitHubProviderWithClient(client *github.Client) *GitHubProvider {
	return &GitHubProvider{client: client}
}

// Repository returns metadata for owner/repo, including the immediate parent for forks.
func (p *GitHubProvider) Repository(ctx context.Context, owner, repo string) (*Repository, error) {
	r, resp, err := p.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s/%s", ErrRepositoryNotFound, owner, repo)
		}
		return nil, fmt.Errorf("get repository: %w", err)
	}
	return repositoryFromGitHub(owner, repo, r), nil
}

// ConfigFile reads path from the default branch of owner/repo.
func (p *GitHubProvider) ConfigFile(ctx context.Context, owner, repo, path string) (map[string]any, error) {
	file, _, resp, err := p.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get contents %s: %w", path, err)
	}

	// path names a directory
	if file == nil {
		return nil, nil
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode contents %s: %w", path, err)
	}

	return decodeConfigFile(path, []byte(content))
}

// repositoryFromGitHub converts a GitHub repository to our Repository type.
func repositoryFromGitHub(owner, name string, r *github.Repository) *Repository {
	result := &Repository{
		Owner:    owner,
		Name:     name,
		Archived: r.GetArchived(),
		Fork:     r.GetFork(),
	}

	if r.Owner != nil && r.Owner.Login != nil {
		result.Owner = r.Owner.GetLogin()
	}
	if r.Name != nil {
		result.Name = r.GetName()
	}

	if result.Fork && r.Parent != nil {
		parent := &Parent{
			Name:          r.Parent.Name,
			DefaultBranch: r.Parent.DefaultBranch,
		}
		if r.Parent.Owner != nil {
			parent.Owner = r.Parent.Owner.Login
		}
		result.Parent = parent
	}

	return result
}
