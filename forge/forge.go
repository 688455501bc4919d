package forge

import "context"

// Platform identifies a repository hosting service.
type Platform string

const (
	PlatformGitHub Platform = "github"
	PlatformGitLab Platform = "gitlab"
)

// Provider reads repository metadata and control files from a hosting service.
// Implementations exist for GitHub and GitLab.
type Provider interface {
	// Repository returns the metadata snapshot for owner/repo.
	Repository(ctx context.Context, owner, repo string) (*Repository, error)

	// ConfigFile reads and decodes the YAML file at path in owner/repo.
	// A missing file is reported as (nil, nil), not as an error.
	ConfigFile(ctx context.Context, owner, repo, path string) (map[string]any, error)
}

// Repository is a read-only snapshot of repository metadata.
type Repository struct {
	Owner    string  // Owner login or namespace path
	Name     string  // Repository name
	Archived bool    // Archived repositories are read-only
	Fork     bool    // Whether the repository was forked from another
	Parent   *Parent // Immediate upstream; nil unless Fork is set and the parent is visible
}

// Parent describes the immediate upstream of a fork.
// Fields are nil when the hosting service did not report them.
type Parent struct {
	Owner         *string // Owner login or namespace path
	Name          *string // Repository name
	DefaultBranch *string // Default branch name
}

// Upstream returns the parent's owner and default branch.
// ok is false when either is missing or empty.
func (p *Parent) Upstream() (owner, branch string, ok bool) {
	if p == nil || p.Owner == nil || p.DefaultBranch == nil {
		return "", "", false
	}
	if *p.Owner == "" || *p.DefaultBranch == "" {
		return "", "", false
	}
	return *p.Owner, *p.DefaultBranch, true
}

// FullName returns "owner/name".
func (r *Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{ name string }

var providerKey = &contextKey{"forge-provider"}

// ContextWithProvider adds a Provider to a context.Context.
func ContextWithProvider(ctx context.Context, p Provider) context.Context {
	return context.WithValue(ctx, providerKey, p)
}

// ProviderFromContext retrieves a Provider from a context.Context.
// Returns nil if no Provider is present.
func ProviderFromContext(ctx context.Context) Provider {
	if p, ok := ctx.Value(providerKey).(Provider); ok {
		return p
	}
	return nil
}
