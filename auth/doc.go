// Package auth authenticates pullsync as a GitHub App.
//
// A GitHub App signs short-lived RS256 JWTs with its private key and
// exchanges them for installation tokens. Installation tokens are what
// the forge provider uses to read repository metadata and config files.
//
//	key, _ := os.ReadFile("app.private-key.pem")
//	ts, err := auth.NewAppTokenSource(ctx, auth.AppConfig{
//	    AppID:          12345,
//	    InstallationID: 678,
//	    PrivateKey:     key,
//	})
//	provider, err := forge.NewGitHubProviderFromTokenSource(ctx, ts, "")
//
// Both the JWT and the installation token are cached and refreshed
// shortly before they expire.
package auth
