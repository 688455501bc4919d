package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"golang.org/x/oauth2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/randalmurphal/pullsync"
	"github.com/randalmurphal/pullsync/auth"
	"github.com/randalmurphal/pullsync/config"
	clierrors "github.com/randalmurphal/pullsync/errors"
	"github.com/randalmurphal/pullsync/forge"
	pullhttp "github.com/randalmurphal/pullsync/http"
)

// newConfigResolver reads settings for the repository enclosing the working directory.
func newConfigResolver() *config.Resolver {
	return config.NewResolver(".")
}

// loadSettings resolves and validates settings, applying global flag overrides.
func loadSettings() (config.Settings, error) {
	resolved := newConfigResolver().ResolveWithFlags(map[string]string{
		config.KeyConfigFilename:     configFilename,
		config.KeyDefaultMergeMethod: mergeMethod,
		config.KeyProvider:           providerName,
	})
	settings, err := config.Load(resolved)
	if err != nil {
		return config.Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	return settings, nil
}

// jobsFromArgs parses owner/repo arguments. With no arguments the target is
// read from the origin remote of the enclosing git repository, and the
// remote's platform is returned too.
func jobsFromArgs(args []string) ([]pullsync.JobData, forge.Platform, error) {
	if len(args) == 0 {
		job, platform, err := repoFromGit(".")
		if err != nil {
			return nil, "", err
		}
		return []pullsync.JobData{job}, platform, nil
	}

	jobs := make([]pullsync.JobData, 0, len(args))
	for _, arg := range args {
		job, err := pullsync.ParseJobData(arg)
		if err != nil {
			return nil, "", err
		}
		jobs = append(jobs, job)
	}
	return jobs, "", nil
}

// repoFromGit reads owner/repo from the origin remote of the repository
// enclosing dir. The platform is empty when the host is not recognized.
func repoFromGit(dir string) (pullsync.JobData, forge.Platform, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return pullsync.JobData{}, "", clierrors.NewNotInGitRepoError()
		}
		return pullsync.JobData{}, "", fmt.Errorf("open git repository: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return pullsync.JobData{}, "", clierrors.NewNoRemoteError(err.Error())
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return pullsync.JobData{}, "", clierrors.NewNoRemoteError("origin has no URL")
	}

	owner, name, err := forge.ParseRepoFromURL(urls[0])
	if err != nil {
		return pullsync.JobData{}, "", clierrors.NewNoRemoteError(err.Error())
	}

	platform, err := forge.DetectPlatform(urls[0])
	if err != nil {
		platform = ""
	}
	return pullsync.JobData{Owner: owner, Repo: name}, platform, nil
}

// selectPlatform prefers the configured provider, then the detected one.
func selectPlatform(s config.Settings, detected forge.Platform) forge.Platform {
	if s.Provider != "" {
		return s.Provider
	}
	if detected != "" {
		return detected
	}
	return forge.PlatformGitHub
}

// providerFor returns the provider already carried by ctx, or builds one
// from settings. Callers embedding the command inject theirs with
// forge.ContextWithProvider.
func providerFor(ctx context.Context, s config.Settings, platform forge.Platform) (forge.Provider, error) {
	if p := forge.ProviderFromContext(ctx); p != nil {
		return p, nil
	}
	return newProvider(ctx, s, platform)
}

// newProvider builds the forge client for platform from settings.
// GitHub App credentials take precedence over a personal token. GitHub
// requests are retried --retries times; go-gitlab retries on its own.
func newProvider(ctx context.Context, s config.Settings, platform forge.Platform) (forge.Provider, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, pullhttp.NewClient(retries))

	if platform == forge.PlatformGitLab {
		if s.GitLabToken == "" {
			return nil, clierrors.NewNotAuthenticatedError(platform)
		}
		p, err := forge.NewGitLabProvider(s.GitLabToken, s.GitLabAPIURL)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	if s.AppConfigured() {
		key, err := os.ReadFile(s.AppPrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading app private key: %w", err)
		}
		ts, err := auth.NewAppTokenSource(ctx, auth.AppConfig{
			AppID:          s.AppID,
			InstallationID: s.AppInstallationID,
			PrivateKey:     key,
			BaseURL:        s.GitHubAPIURL,
		})
		if err != nil {
			return nil, err
		}
		return newGitHubProvider(ctx, ts, s.GitHubAPIURL)
	}

	if s.GitHubToken == "" {
		return nil, clierrors.NewNotAuthenticatedError(platform)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.GitHubToken})
	return newGitHubProvider(ctx, ts, s.GitHubAPIURL)
}

func newGitHubProvider(ctx context.Context, ts oauth2.TokenSource, baseURL string) (forge.Provider, error) {
	p, err := forge.NewGitHubProviderFromTokenSource(ctx, ts, baseURL)
	if err != nil {
		return nil, err
	}
	return p, nil
}

var titleCase = cases.Title(language.English)

// outcomeLabel renders a resolution for humans, e.g. "Skipped (Not-Configured)".
func outcomeLabel(res *pullsync.Resolution) string {
	label := titleCase.String(string(res.Outcome))
	if res.Reason != "" {
		label += " (" + titleCase.String(string(res.Reason)) + ")"
	}
	return label
}

// maskSecret hides all but the last four characters.
func maskSecret(v string) string {
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", len(v)-4) + v[len(v)-4:]
}

// info prints a message unless --quiet is set.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
