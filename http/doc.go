// Package http provides the retrying transport pullsync's command line
// installs under the forge API clients.
//
// Retrying is the caller's policy: the resolver itself makes one pass and
// lets remote failures propagate. The CLI opts in by handing this
// transport to oauth2 through the request context:
//
//	ctx = context.WithValue(ctx, oauth2.HTTPClient, pullhttp.NewClient(2))
//	provider, err := forge.NewGitHubProviderFromTokenSource(ctx, ts, "")
//
// Only GET, HEAD and OPTIONS requests are retried. A Retry-After header
// sets the wait, capped by MaxWait; otherwise the wait doubles each attempt.
package http
