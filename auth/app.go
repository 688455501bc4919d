package auth

import (
	"context"
	"crypto/rsa"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-github/v57/github"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/oauth2"
)

const (
	// GitHub rejects App JWTs that live longer than ten minutes.
	appJWTTTL = 9 * time.Minute
	clockSkew = 60 * time.Second
)

// AppConfig identifies a GitHub App installation.
type AppConfig struct {
	AppID          int64
	InstallationID int64
	PrivateKey     []byte // PEM
	BaseURL        string // GitHub Enterprise API URL; empty for github.com
}

// Validate checks that every required field is set.
func (c AppConfig) Validate() error {
	if c.AppID <= 0 {
		return ErrAppIDRequired
	}
	if c.InstallationID <= 0 {
		return ErrInstallationIDRequired
	}
	if len(c.PrivateKey) == 0 {
		return fmt.Errorf("%w: empty key", ErrInvalidPrivateKey)
	}
	return nil
}

// ParsePrivateKey parses a PEM-encoded RSA private key (PKCS#1 or PKCS#8).
func ParsePrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	return key, nil
}

// GenerateAppJWT signs a JWT that authenticates as the App itself.
// The issued-at time is backdated to tolerate clock drift.
func GenerateAppJWT(appID int64, key *rsa.PrivateKey, now time.Time) (string, time.Time, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token ID: %w", err)
	}

	expiresAt := now.Add(appJWTTTL)
	claims := jwt.RegisteredClaims{
		Issuer:    strconv.FormatInt(appID, 10),
		IssuedAt:  jwt.NewNumericDate(now.Add(-clockSkew)),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        id,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign app JWT: %w", err)
	}
	return signed, expiresAt, nil
}

// appJWTSource mints App JWTs on demand.
type appJWTSource struct {
	appID int64
	key   *rsa.PrivateKey
	now   func() time.Time
}

func (s *appJWTSource) Token() (*oauth2.Token, error) {
	signed, expiresAt, err := GenerateAppJWT(s.appID, s.key, s.now())
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: signed, TokenType: "Bearer", Expiry: expiresAt}, nil
}

// installationSource exchanges App JWTs for installation tokens.
type installationSource struct {
	ctx            context.Context
	client         *github.Client
	installationID int64
}

func (s *installationSource) Token() (*oauth2.Token, error) {
	tok, _, err := s.client.Apps.CreateInstallationToken(s.ctx, s.installationID, nil)
	if err != nil {
		return nil, fmt.Errorf("create installation token for %d: %w", s.installationID, err)
	}
	return &oauth2.Token{
		AccessToken: tok.GetToken(),
		TokenType:   "Bearer",
		Expiry:      tok.GetExpiresAt().Time,
	}, nil
}

// NewAppTokenSource returns a token source yielding installation tokens
// for cfg. The context is used for every token exchange.
func NewAppTokenSource(ctx context.Context, cfg AppConfig) (oauth2.TokenSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	jwtSource := oauth2.ReuseTokenSource(nil, &appJWTSource{appID: cfg.AppID, key: key, now: time.Now})
	client := github.NewClient(oauth2.NewClient(ctx, jwtSource))
	if cfg.BaseURL != "" {
		client, err = client.WithEnterpriseURLs(cfg.BaseURL, cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("github base URL: %w", err)
		}
	}

	return oauth2.ReuseTokenSource(nil, &installationSource{
		ctx:            ctx,
		client:         client,
		installationID: cfg.InstallationID,
	}), nil
}
