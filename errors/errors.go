package errors

import "errors"

// Common CLI errors with actionable guidance.
var (
	// ErrNotAuthenticated indicates the forge rejected or lacked credentials.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPermissionDenied indicates the credentials cannot read the repository.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRateLimited indicates the forge API rate limit was exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrConnectionFailed indicates the forge API is unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrNotInGitRepo indicates the command needs a git repository to infer the target.
	ErrNotInGitRepo = errors.New("not in a git repository")

	// ErrNoRemote indicates the git repository has no usable origin remote.
	ErrNoRemote = errors.New("no origin remote")
)
