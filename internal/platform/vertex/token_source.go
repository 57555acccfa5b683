package vertex

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/galenhq/galen-api/internal/config"
	"github.com/galenhq/galen-api/internal/generation"
)

// cloudPlatformScope is the single permission scope every upstream call
// is authorized under.
const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// TokenSource supplies a bearer token for upstream calls. Implementations
// may cache and refresh internally; every call must yield a token valid
// for that call's attempts.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// GoogleTokenSource obtains bearer tokens from Google identity credentials:
// a service-account JSON key file when one is configured, otherwise ambient
// application-default credentials. Tokens are cached by the underlying
// oauth2 source and refreshed transparently on expiry.
type GoogleTokenSource struct {
	source oauth2.TokenSource
}

// NewGoogleTokenSource builds a token source from the configured identity
// artifact. Construction fails with an error wrapping generation.ErrAuthFailed
// when the artifact is missing or invalid, so a misconfigured deployment
// surfaces at startup rather than on the first generation call.
func NewGoogleTokenSource(ctx context.Context, cfg config.LLMConfig) (*GoogleTokenSource, error) {
	var creds *google.Credentials

	if cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: reading credentials file %s: %v",
				generation.ErrAuthFailed, cfg.CredentialsFile, err)
		}
		creds, err = google.CredentialsFromJSON(ctx, data, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing credentials file: %v",
				generation.ErrAuthFailed, err)
		}
	} else {
		var err error
		creds, err = google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("%w: locating default credentials: %v",
				generation.ErrAuthFailed, err)
		}
	}

	return &GoogleTokenSource{
		source: oauth2.ReuseTokenSource(nil, creds.TokenSource),
	}, nil
}

// Token returns a bearer token, from cache while still valid. Failures wrap
// generation.ErrAuthFailed.
func (s *GoogleTokenSource) Token(_ context.Context) (string, error) {
	tok, err := s.source.Token()
	if err != nil {
		return "", fmt.Errorf("%w: retrieving access token: %v", generation.ErrAuthFailed, err)
	}
	return tok.AccessToken, nil
}

// Ensure GoogleTokenSource implements TokenSource.
var _ TokenSource = (*GoogleTokenSource)(nil)
