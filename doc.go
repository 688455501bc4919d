// Package pullsync resolves the pull config that governs automated upstream
// sync for a repository.
//
// A scheduled job calls Resolver.ResolvePullConfig once per repository. The
// result is one of:
//
//   - nil: the repository is archived, has no config file and is not a
//     fork, or is a fork whose parent has no usable default branch
//   - the config committed at .github/pull.yml (the live config)
//   - a one-rule config synthesized for forks, syncing the parent's
//     default branch into the branch of the same name
//
// A config file that exists but fails validation is an error, never nil:
//
//	resolver, _ := pullsync.NewResolver(provider, pullsync.Options{})
//	cfg, err := resolver.ResolvePullConfig(ctx, pullsync.JobData{Owner: "octo", Repo: "hello"})
//	switch {
//	case pullsync.IsInvalidConfig(err):
//	    // tell the repository owner; do not fall back
//	case err != nil:
//	    // remote failure; let the scheduler retry
//	case cfg == nil:
//	    // nothing to do
//	}
//
// Config files may inherit from another file with an _extends key
// ("repo", "owner/repo", optionally followed by ":path"). Repositories with
// no file of their own fall back to the owner's .github repository.
package pullsync
