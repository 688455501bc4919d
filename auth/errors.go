package auth

import "errors"

// Authentication errors.
var (
	// ErrInvalidPrivateKey indicates the App private key is not a PEM-encoded RSA key.
	ErrInvalidPrivateKey = errors.New("invalid app private key")

	// ErrAppIDRequired indicates the GitHub App ID is missing.
	ErrAppIDRequired = errors.New("app ID is required")

	// ErrInstallationIDRequired indicates the installation ID is missing.
	ErrInstallationIDRequired = errors.New("app installation ID is required")
)
