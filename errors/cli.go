package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/xanzy/go-gitlab"

	"github.com/randalmurphal/pullsync"
	"github.com/randalmurphal/pullsync/forge"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// WrapResolveError turns a resolution failure for target (owner/repo) into
// a CLIError. Errors it cannot classify are returned unchanged.
func WrapResolveError(err error, target string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	if pullsync.IsInvalidConfig(err) {
		return wrapInvalidConfig(err, target)
	}

	if errors.Is(err, forge.ErrRepositoryNotFound) {
		return &CLIError{
			Err:        err,
			Message:    fmt.Sprintf("Repository %s not found.", target),
			Suggestion: "Check the name, and that your token can see private repositories.",
		}
	}

	if wrapped := wrapHTTPError(err); wrapped != nil {
		return wrapped
	}

	return WrapConnectionError(err)
}

func wrapInvalidConfig(err error, target string) error {
	msg := fmt.Sprintf("The pull config for %s is invalid.", target)
	suggestion := "Fix the control file; resolution does not fall back when it is invalid."
	if errors.Is(err, pullsync.ErrInvalidDefaultConfig) {
		msg = fmt.Sprintf("The synthesized fork config for %s is invalid.", target)
		suggestion = "Check default_merge_method in your pullsync settings."
	}

	details := err.Error()
	if problems := pullsync.ValidationErrors(err); len(problems) > 0 {
		details = "  - " + strings.Join(problems, "\n  - ")
	}

	return &CLIError{Err: err, Message: msg, Details: details, Suggestion: suggestion}
}

// wrapHTTPError classifies API errors by status code.
func wrapHTTPError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &CLIError{
			Err:        fmt.Errorf("%w: %w", ErrRateLimited, err),
			Message:    "GitHub API rate limit exceeded.",
			Suggestion: fmt.Sprintf("Try again after %s, or authenticate to raise the limit.", rateErr.Rate.Reset.Format("15:04:05 MST")),
		}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &CLIError{
			Err:        fmt.Errorf("%w: %w", ErrRateLimited, err),
			Message:    "GitHub secondary rate limit triggered.",
			Suggestion: "Lower --concurrency and try again in a minute.",
		}
	}

	status := 0
	var ghErr *github.ErrorResponse
	var glErr *gitlab.ErrorResponse
	switch {
	case errors.As(err, &ghErr) && ghErr.Response != nil:
		status = ghErr.Response.StatusCode
	case errors.As(err, &glErr) && glErr.Response != nil:
		status = glErr.Response.StatusCode
	}

	switch status {
	case http.StatusUnauthorized:
		return &CLIError{
			Err:        fmt.Errorf("%w: %w", ErrNotAuthenticated, err),
			Message:    "The forge rejected your credentials.",
			Suggestion: "Set a valid token with 'pullsync config set github_token <token>' or the GITHUB_TOKEN environment variable.",
		}
	case http.StatusForbidden:
		return &CLIError{
			Err:        fmt.Errorf("%w: %w", ErrPermissionDenied, err),
			Message:    "Your credentials cannot read this repository.",
			Suggestion: "Grant the token (or GitHub App installation) read access to repository contents and metadata.",
		}
	}
	return nil
}

// WrapConnectionError wraps network failures with helpful guidance.
func WrapConnectionError(err error) error {
	if err == nil || !IsConnectionError(err) {
		return err
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "certificate") || strings.Contains(errStr, "x509") || strings.Contains(errStr, "tls"):
		return &CLIError{
			Err:        fmt.Errorf("%w: %w", ErrConnectionFailed, err),
			Message:    "TLS/certificate error connecting to the forge API.",
			Details:    err.Error(),
			Suggestion: "Check that the API URL and its certificate are valid.",
		}
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return &CLIError{
			Err:        fmt.Errorf("%w: %w", ErrConnectionFailed, err),
			Message:    "Connection to the forge API timed out.",
			Suggestion: "The server may be overloaded or unreachable.\nTry again in a moment.",
		}
	default:
		return &CLIError{
			Err:        fmt.Errorf("%w: %w", ErrConnectionFailed, err),
			Message:    "Cannot connect to the forge API.",
			Suggestion: "Check that:\n  - The API URL is correct\n  - Your network connection is working",
		}
	}
}

// NewNotInGitRepoError is returned when no repository argument was given and
// the working directory is not inside a git repository.
func NewNotInGitRepoError() error {
	return &CLIError{
		Err:        ErrNotInGitRepo,
		Message:    "No repository given and the current directory is not a git repository.",
		Suggestion: "Pass one or more owner/repo arguments, or run from a clone.",
	}
}

// NewNoRemoteError is returned when the origin remote is missing or unparseable.
func NewNoRemoteError(detail string) error {
	return &CLIError{
		Err:        ErrNoRemote,
		Message:    "Cannot determine the repository from the origin remote.",
		Details:    detail,
		Suggestion: "Pass owner/repo explicitly.",
	}
}

// NewNotAuthenticatedError is returned when no credentials are configured
// for the selected platform.
func NewNotAuthenticatedError(platform forge.Platform) error {
	return &CLIError{
		Err:     ErrNotAuthenticated,
		Message: fmt.Sprintf("No %s credentials configured.", platform),
		Suggestion: fmt.Sprintf("Set %s_TOKEN, or run 'pullsync config set %s_token <token>'.",
			strings.ToUpper(string(platform)), platform),
	}
}
