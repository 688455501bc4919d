package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/xanzy/go-gitlab"

	"github.com/randalmurphal/pullsync"
	"github.com/randalmurphal/pullsync/forge"
)

func httpResponse(status int) *http.Response {
	u, _ := url.Parse("https://api.example.com/repos/octo/hello")
	return &http.Response{
		StatusCode: status,
		Request:    &http.Request{Method: http.MethodGet, URL: u},
	}
}

func TestCLIError(t *testing.T) {
	err := &CLIError{
		Err:        ErrNotAuthenticated,
		Message:    "Test message",
		Suggestion: "Test suggestion",
		Details:    "Test details",
	}

	errStr := err.Error()
	for _, want := range []string{"Test message", "Test details", "Test suggestion"} {
		if !strings.Contains(errStr, want) {
			t.Errorf("expected error to contain %q, got %q", want, errStr)
		}
	}

	if !errors.Is(err, ErrNotAuthenticated) {
		t.Error("expected error to unwrap to ErrNotAuthenticated")
	}
}

func TestCLIError_MinimalFields(t *testing.T) {
	err := &CLIError{
		Err:     ErrConnectionFailed,
		Message: "Connection failed",
	}

	if errStr := err.Error(); errStr != "Connection failed" {
		t.Errorf("expected 'Connection failed', got %q", errStr)
	}
}

func TestWrapResolveError_InvalidConfig(t *testing.T) {
	_, verr := pullsync.Validate(map[string]any{"version": "1", "rules": []any{map[string]any{"base": "main"}}})
	err := fmt.Errorf("%w: octo/hello .github/pull.yml: %w", pullsync.ErrInvalidConfig, verr)

	wrapped := WrapResolveError(err, "octo/hello")

	var cliErr *CLIError
	if !errors.As(wrapped, &cliErr) {
		t.Fatalf("expected *CLIError, got %T", wrapped)
	}
	if !strings.Contains(cliErr.Message, "octo/hello") {
		t.Errorf("Message = %q", cliErr.Message)
	}
	if !strings.Contains(cliErr.Details, "'upstream' is required") {
		t.Errorf("Details should list violations, got %q", cliErr.Details)
	}
	if !pullsync.IsInvalidConfig(wrapped) {
		t.Error("wrapped error should still be an invalid config")
	}
}

func TestWrapResolveError_InvalidDefaultConfig(t *testing.T) {
	err := fmt.Errorf("%w: bad merge method", pullsync.ErrInvalidDefaultConfig)

	wrapped := WrapResolveError(err, "octo/hello")
	if !strings.Contains(wrapped.Error(), "synthesized") {
		t.Errorf("error = %q", wrapped.Error())
	}
}

func TestWrapResolveError_Classification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantIs     error
		wantSubstr string
	}{
		{
			name:       "repository not found",
			err:        fmt.Errorf("%w: octo/hello", forge.ErrRepositoryNotFound),
			wantIs:     forge.ErrRepositoryNotFound,
			wantSubstr: "not found",
		},
		{
			name:       "github 401",
			err:        fmt.Errorf("get repository: %w", &github.ErrorResponse{Response: httpResponse(401), Message: "Bad credentials"}),
			wantIs:     ErrNotAuthenticated,
			wantSubstr: "rejected your credentials",
		},
		{
			name:       "github 403",
			err:        fmt.Errorf("get repository: %w", &github.ErrorResponse{Response: httpResponse(403), Message: "Resource not accessible"}),
			wantIs:     ErrPermissionDenied,
			wantSubstr: "cannot read",
		},
		{
			name:       "gitlab 401",
			err:        fmt.Errorf("get project: %w", &gitlab.ErrorResponse{Response: httpResponse(401), Message: "401 Unauthorized"}),
			wantIs:     ErrNotAuthenticated,
			wantSubstr: "rejected your credentials",
		},
		{
			name: "rate limit",
			err: &github.RateLimitError{
				Rate:     github.Rate{Reset: github.Timestamp{Time: time.Now().Add(time.Hour)}},
				Response: httpResponse(403),
				Message:  "API rate limit exceeded",
			},
			wantIs:     ErrRateLimited,
			wantSubstr: "rate limit",
		},
		{
			name:       "connection refused",
			err:        errors.New("dial tcp 127.0.0.1:443: connect: connection refused"),
			wantIs:     ErrConnectionFailed,
			wantSubstr: "Cannot connect",
		},
		{
			name:       "timeout",
			err:        errors.New("context deadline exceeded"),
			wantIs:     ErrConnectionFailed,
			wantSubstr: "timed out",
		},
		{
			name:       "certificate",
			err:        errors.New("x509: certificate signed by unknown authority"),
			wantIs:     ErrConnectionFailed,
			wantSubstr: "TLS/certificate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapResolveError(tt.err, "octo/hello")

			var cliErr *CLIError
			if !errors.As(wrapped, &cliErr) {
				t.Fatalf("expected *CLIError, got %T: %v", wrapped, wrapped)
			}
			if !errors.Is(wrapped, tt.wantIs) {
				t.Errorf("expected errors.Is(%v)", tt.wantIs)
			}
			if !strings.Contains(wrapped.Error(), tt.wantSubstr) {
				t.Errorf("expected error to contain %q, got %q", tt.wantSubstr, wrapped.Error())
			}
		})
	}
}

func TestWrapResolveError_PassThrough(t *testing.T) {
	if WrapResolveError(nil, "x/y") != nil {
		t.Error("nil should stay nil")
	}

	plain := errors.New("something else")
	if got := WrapResolveError(plain, "x/y"); got != plain {
		t.Errorf("unclassified errors should be returned unchanged, got %v", got)
	}

	already := NewNotInGitRepoError()
	if got := WrapResolveError(already, "x/y"); got != already {
		t.Error("CLIErrors should not be wrapped twice")
	}
}

func TestNewErrors(t *testing.T) {
	if err := NewNotInGitRepoError(); !errors.Is(err, ErrNotInGitRepo) || !strings.Contains(err.Error(), "git repository") {
		t.Errorf("NewNotInGitRepoError() = %v", err)
	}
	if err := NewNoRemoteError("no remote named origin"); !errors.Is(err, ErrNoRemote) || !strings.Contains(err.Error(), "no remote named origin") {
		t.Errorf("NewNoRemoteError() = %v", err)
	}
	err := NewNotAuthenticatedError(forge.PlatformGitLab)
	if !IsAuthError(err) || !strings.Contains(err.Error(), "GITLAB_TOKEN") {
		t.Errorf("NewNotAuthenticatedError() = %v", err)
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrConnectionFailed, true},
		{errors.New("dial tcp: lookup api.github.com: no such host"), true},
		{errors.New("net/http: TLS handshake timeout"), true},
		{errors.New("network is unreachable"), true},
		{fmt.Errorf("get repo: %w", &net.DNSError{Err: "no such host", Name: "ghe.internal"}), true},
		{fmt.Errorf("get repo: %w", context.DeadlineExceeded), true},
		{errors.New("repository not found"), false},
		{errors.New(`Get "https://api.github.com/repos/o/r": context deadline exceeded (Client.Timeout exceeded while awaiting headers)`), true},
		{errors.New("i/o timeout"), true},
		{context.Canceled, false},
	}

	for _, tt := range tests {
		if got := IsConnectionError(tt.err); got != tt.want {
			t.Errorf("IsConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{NewNotAuthenticatedError(forge.PlatformGitHub), 3},
		{&CLIError{Err: ErrPermissionDenied}, 3},
		{&CLIError{Err: ErrRateLimited}, 4},
		{errors.New("connection refused"), 4},
		{fmt.Errorf("read repository o/r: %w", errors.New("net/http: request canceled (Client.Timeout exceeded)")), 4},
		{pullsync.ErrInvalidConfig, 1},
	}

	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
