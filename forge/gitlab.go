package forge

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/xanzy/go-gitlab"
)

// GitLabProvider implements Provider for GitLab projects.
// The owner is the project's namespace path, which may contain slashes.
type GitLabProvider struct {
	client *gitlab.Client
}

// NewGitLabProvider creates a new GitLab provider.
// token is a personal access token.
// baseURL is the GitLab API URL (empty for gitlab.com).
func NewGitLabProvider(token, baseURL string) (*GitLabProvider, error) {
	if token == "" {
		return nil, fmt.Errorf("GitLab: %w", ErrTokenRequired)
	}

	var client *gitlab.Client
	var err error

	if baseURL != "" {
		client, err = gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	} else {
		client, err = gitlab.NewClient(token)
	}

	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}

	return &GitLabProvider{client: client}, nil
}

// Repository returns metadata for namespace/project.
// For forks the parent project is read separately, since the fork relation
// only carries the parent's ID and path.
func (p *GitLabProvider) Repository(ctx context.Context, owner, repo string) (*Repository, error) {
	project, resp, err := p.client.Projects.GetProject(owner+"/"+repo, nil, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s/%s", ErrRepositoryNotFound, owner, repo)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	result := &Repository{
		Owner:    owner,
		Name:     repo,
		Archived: project.Archived,
		Fork:     project.ForkedFromProject != nil,
	}

	if !result.Fork {
		return result, nil
	}

	parent, resp, err := p.client.Projects.GetProject(project.ForkedFromProject.ID, nil, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			// Parent deleted or not visible to this token; the fork has no usable upstream.
			return result, nil
		}
		return nil, fmt.Errorf("get parent project: %w", err)
	}

	result.Parent = parentFromGitLab(parent)
	return result, nil
}

// ConfigFile reads path at HEAD of namespace/project.
func (p *GitLabProvider) ConfigFile(ctx context.Context, owner, repo, path string) (map[string]any, error) {
	opts := &gitlab.GetFileOptions{Ref: gitlab.Ptr("HEAD")}

	file, resp, err := p.client.RepositoryFiles.GetFile(owner+"/"+repo, path, opts, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get file %s: %w", path, err)
	}

	data := []byte(file.Content)
	if file.Encoding == "base64" {
		data, err = base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			return nil, fmt.Errorf("decode file %s: %w", path, err)
		}
	}

	return decodeConfigFile(path, data)
}

// parentFromGitLab converts a GitLab project to a Parent.
// Empty strings are kept as present-but-empty.
func parentFromGitLab(project *gitlab.Project) *Parent {
	parent := &Parent{
		Name:          gitlab.Ptr(project.Path),
		DefaultBranch: gitlab.Ptr(project.DefaultBranch),
	}
	if project.Namespace != nil {
		parent.Owner = gitlab.Ptr(project.Namespace.FullPath)
	}
	return parent
}
