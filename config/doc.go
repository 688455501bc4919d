// Package config resolves pullsync's own settings.
//
// Values are layered with clear precedence:
//  1. Command-line flags (highest priority)
//  2. Environment variables (PULLSYNC_<KEY>, plus GITHUB_TOKEN and GITLAB_TOKEN)
//  3. Local config (.pullsync.yaml in the git root; secrets are ignored here)
//  4. Global config (~/.config/pullsync/config.yaml)
//  5. Built-in defaults (lowest priority)
//
// # Usage
//
//	resolver := config.NewResolver(".")
//	resolved := resolver.ResolveWithFlags(map[string]string{
//	    config.KeyConfigFilename: flagFilename,
//	})
//	settings, err := config.Load(resolved)
//
// Each resolved value remembers where it came from:
//
//	value, src := resolved.GetWithSource(config.KeyGitHubToken) // src == config.SourceEnv
//
// Values are written back with a Store:
//
//	err := config.StoreFor(resolver).SaveGlobal(config.KeyDefaultMergeMethod, "rebase")
package config
