package forge

import (
	"fmt"
	"strings"
)

// DetectPlatform attempts to detect the hosting platform from a remote URL.
func DetectPlatform(remoteURL string) (Platform, error) {
	remoteURL = strings.ToLower(remoteURL)

	if strings.Contains(remoteURL, "github") {
		return PlatformGitHub, nil
	}
	if strings.Contains(remoteURL, "gitlab") {
		return PlatformGitLab, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownPlatform, remoteURL)
}

// ParseRepoFromURL extracts owner and repo from a git remote URL.
// GitLab subgroups are kept in owner ("group/sub").
func ParseRepoFromURL(remoteURL string) (owner, repo string, err error) {
	var path string

	switch {
	// git@github.com:owner/repo.git
	case strings.HasPrefix(remoteURL, "git@"):
		_, after, found := strings.Cut(remoteURL, ":")
		if !found {
			return "", "", fmt.Errorf("invalid SSH URL format: %s", remoteURL)
		}
		path = after

	// https://github.com/owner/repo.git, ssh://git@host/owner/repo.git
	case strings.Contains(remoteURL, "://"):
		_, after, _ := strings.Cut(remoteURL, "://")
		_, rest, found := strings.Cut(after, "/")
		if !found {
			return "", "", fmt.Errorf("invalid URL format: %s", remoteURL)
		}
		path = rest

	default:
		return "", "", fmt.Errorf("invalid URL format: %s", remoteURL)
	}

	path = strings.Trim(strings.TrimSuffix(path, ".git"), "/")
	idx := strings.LastIndex(path, "/")
	if idx <= 0 || idx == len(path)-1 {
		return "", "", fmt.Errorf("invalid repository path: %s", path)
	}

	return path[:idx], path[idx+1:], nil
}
