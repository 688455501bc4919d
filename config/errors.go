package config

import "errors"

var (
	// ErrUnknownKey indicates a key that pullsync does not understand.
	ErrUnknownKey = errors.New("unknown config key")

	// ErrInvalidValue indicates a value that failed validation.
	ErrInvalidValue = errors.New("invalid config value")

	// ErrSecretInLocal indicates an attempt to store a secret in the
	// repository-local config file.
	ErrSecretInLocal = errors.New("secrets cannot be stored in local config")

	// ErrNoGitRoot indicates no enclosing git repository was found.
	ErrNoGitRoot = errors.New("not inside a git repository")
)
