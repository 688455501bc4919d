package forge

import "errors"

// Forge errors
var (
	// ErrUnknownPlatform indicates the git remote uses an unsupported host.
	ErrUnknownPlatform = errors.New("unknown git platform")

	// ErrRepositoryNotFound indicates the repository does not exist or is not visible.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrMalformedFile indicates a control file exists but is not a YAML mapping.
	ErrMalformedFile = errors.New("malformed config file")

	// ErrTokenRequired indicates no API token was supplied.
	ErrTokenRequired = errors.New("API token is required")
)
