// Package integrationtest exercises resolution end to end: the resolver,
// the GitHub provider, and the HTTP stack against a fake GitHub API.
package integrationtest

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/randalmurphal/pullsync"
	"github.com/randalmurphal/pullsync/forge"
	pullhttp "github.com/randalmurphal/pullsync/http"
	"github.com/randalmurphal/pullsync/testutil"
)

const pullYML = ".github/pull.yml"

// setupResolver wires a resolver to fake through the same token-source
// path the command line uses. Logs are captured in the returned buffer.
func setupResolver(t *testing.T, fake *testutil.FakeGitHub, retries int) (*pullsync.Resolver, *bytes.Buffer) {
	t.Helper()

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, pullhttp.NewClient(retries))
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "ghp_test"})
	provider, err := forge.NewGitHubProviderFromTokenSource(ctx, ts, fake.URL())
	require.NoError(t, err)

	logger, logs := testutil.TestLogger(t)
	resolver, err := pullsync.NewResolver(provider, pullsync.Options{Logger: logger})
	require.NoError(t, err)
	return resolver, logs
}
