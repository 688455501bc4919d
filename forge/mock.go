package forge

import "context"

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	RepositoryFunc func(ctx context.Context, owner, repo string) (*Repository, error)
	ConfigFileFunc func(ctx context.Context, owner, repo, path string) (map[string]any, error)
}

// Repository implements Provider.
func (m *MockProvider) Repository(ctx context.Context, owner, repo string) (*Repository, error) {
	if m.RepositoryFunc != nil {
		return m.RepositoryFunc(ctx, owner, repo)
	}
	return &Repository{Owner: owner, Name: repo}, nil
}

// ConfigFile implements Provider.
func (m *MockProvider) ConfigFile(ctx context.Context, owner, repo, path string) (map[string]any, error) {
	if m.ConfigFileFunc != nil {
		return m.ConfigFileFunc(ctx, owner, repo, path)
	}
	return nil, nil
}
