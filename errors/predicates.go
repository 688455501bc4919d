package errors

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"strings"
)

// IsAuthError reports whether the forge rejected the credentials.
func IsAuthError(err error) bool { return errors.Is(err, ErrNotAuthenticated) }

// IsPermissionError reports whether the credentials lack access.
func IsPermissionError(err error) bool { return errors.Is(err, ErrPermissionDenied) }

// IsRateLimitError reports whether an exhausted rate limit stopped the request.
func IsRateLimitError(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsConnectionError reports whether the forge could not be reached at all:
// DNS, dial, TLS or timeout failures.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConnectionFailed) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	var dnsErr *net.DNSError
	var opErr *net.OpError
	var certErr *tls.CertificateVerificationError
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) ||
		errors.As(err, &certErr) || errors.As(err, &unknownAuthority) {
		return true
	}
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// Some clients flatten the cause into the message.
	msg := strings.ToLower(err.Error())
	for _, s := range []string{
		"connection refused", "no such host", "network is unreachable", "dial tcp",
		"x509", "certificate", "tls handshake",
		"timeout", "deadline exceeded",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsAuthError(err), IsPermissionError(err):
		return 3
	case IsConnectionError(err), IsRateLimitError(err):
		return 4
	default:
		return 1
	}
}
