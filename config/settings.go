package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/randalmurphal/pullsync"
	"github.com/randalmurphal/pullsync/forge"
)

// Settings is the validated, typed form of a resolved configuration.
type Settings struct {
	ConfigFilename     string
	DefaultMergeMethod pullsync.MergeMethod

	// Provider is empty when the platform should be detected from the remote.
	Provider forge.Platform

	GitHubToken  string
	GitHubAPIURL string
	GitLabToken  string
	GitLabAPIURL string

	AppID             int64
	AppInstallationID int64
	AppPrivateKeyFile string
}

// AppConfigured reports whether GitHub App credentials are present.
func (s Settings) AppConfigured() bool {
	return s.AppID != 0 && s.AppPrivateKeyFile != ""
}

// ResolverOptions returns the resolver options these settings describe.
func (s Settings) ResolverOptions() pullsync.Options {
	return pullsync.Options{
		ConfigFilename:     s.ConfigFilename,
		DefaultMergeMethod: s.DefaultMergeMethod,
	}
}

// Load validates a resolved configuration. Every problem is reported.
func Load(c *Resolved) (Settings, error) {
	s := Settings{
		ConfigFilename:    c.Get(KeyConfigFilename),
		GitHubToken:       c.Get(KeyGitHubToken),
		GitHubAPIURL:      c.Get(KeyGitHubAPIURL),
		GitLabToken:       c.Get(KeyGitLabToken),
		GitLabAPIURL:      c.Get(KeyGitLabAPIURL),
		AppPrivateKeyFile: c.Get(KeyAppPrivateKeyFile),
	}

	var errs []error
	if s.ConfigFilename == "" {
		errs = append(errs, fmt.Errorf("%w: %s must not be empty", ErrInvalidValue, KeyConfigFilename))
	}

	if v := c.Get(KeyDefaultMergeMethod); v != "" {
		m, err := pullsync.ParseMergeMethod(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidValue, KeyDefaultMergeMethod, err))
		}
		s.DefaultMergeMethod = m
	}

	switch p := forge.Platform(c.Get(KeyProvider)); p {
	case "", forge.PlatformGitHub, forge.PlatformGitLab:
		s.Provider = p
	default:
		errs = append(errs, fmt.Errorf("%w: %s must be github or gitlab, got %q", ErrInvalidValue, KeyProvider, p))
	}

	var err error
	if s.AppID, err = parseID(c, KeyAppID); err != nil {
		errs = append(errs, err)
	}
	if s.AppInstallationID, err = parseID(c, KeyAppInstallationID); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func parseID(c *Resolved, key string) (int64, error) {
	v := c.Get(key)
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrInvalidValue, key, v)
	}
	return id, nil
}

// Validate checks a single key/value pair before it is saved.
func Validate(key, value string) error {
	k, ok := LookupKey(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	c := &Resolved{values: map[string]string{KeyConfigFilename: "pull.yml"}, sources: map[string]Source{}}
	c.set(k.Name, value, SourceFlag)
	_, err := Load(c)
	return err
}
