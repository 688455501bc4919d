// Package forge reads repository metadata and control files from code hosts.
//
// Core types:
//   - Provider: Interface for metadata and control-file reads
//   - Repository: Archived/fork status and the immediate parent of a fork
//   - Parent: Upstream owner and default branch, each optional
//
// Implementations:
//   - GitHubProvider: GitHub REST API via go-github
//   - GitLabProvider: GitLab REST API via go-gitlab
//   - MockProvider: Function-field mock for tests
//
// Example usage:
//
//	provider, _ := forge.NewGitHubProvider(token)
//	repo, err := provider.Repository(ctx, "octo", "hello")
//	if err != nil {
//	    return err
//	}
//	if owner, branch, ok := repo.Parent.Upstream(); ok {
//	    fmt.Printf("fork of %s (%s)\n", owner, branch)
//	}
package forge
