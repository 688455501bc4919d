package config

import "sort"

// Key describes a configuration key understood by pullsync.
type Key struct {
	Name        string
	Default     string
	Description string

	// Secret values are masked in listings and never read from local config.
	Secret bool

	// EnvAliases are unprefixed environment variables consulted before the
	// prefixed one, e.g. GITHUB_TOKEN.
	EnvAliases []string
}

// Configuration keys.
const (
	KeyConfigFilename     = "config_filename"
	KeyDefaultMergeMethod = "default_merge_method"
	KeyProvider           = "provider"
	KeyGitHubToken        = "github_token"
	KeyGitHubAPIURL       = "github_api_url"
	KeyGitLabToken        = "gitlab_token"
	KeyGitLabAPIURL       = "gitlab_api_url"
	KeyAppID              = "app_id"
	KeyAppInstallationID  = "app_installation_id"
	KeyAppPrivateKeyFile  = "app_private_key_file"
)

// Keys lists every supported key.
var Keys = []Key{
	{Name: KeyConfigFilename, Default: "pull.yml", Description: "control file name under .github/"},
	{Name: KeyDefaultMergeMethod, Default: "hardreset", Description: "merge method for synthesized fork configs"},
	{Name: KeyProvider, Description: "forge platform: github or gitlab (detected from the remote when empty)"},
	{Name: KeyGitHubToken, Secret: true, EnvAliases: []string{"GITHUB_TOKEN"}, Description: "GitHub personal access token"},
	{Name: KeyGitHubAPIURL, Description: "GitHub Enterprise API URL"},
	{Name: KeyGitLabToken, Secret: true, EnvAliases: []string{"GITLAB_TOKEN"}, Description: "GitLab access token"},
	{Name: KeyGitLabAPIURL, Description: "self-hosted GitLab API URL"},
	{Name: KeyAppID, Description: "GitHub App ID"},
	{Name: KeyAppInstallationID, Description: "GitHub App installation ID"},
	{Name: KeyAppPrivateKeyFile, Description: "path to the GitHub App private key (PEM)"},
}

// LookupKey returns the key named name.
func LookupKey(name string) (Key, bool) {
	for _, k := range Keys {
		if k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}

// KeyNames returns all key names, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(Keys))
	for _, k := range Keys {
		names = append(names, k.Name)
	}
	sort.Strings(names)
	return names
}
