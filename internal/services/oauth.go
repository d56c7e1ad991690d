package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/shared"
	"golang.org/x/oauth2"
)

// ExchangeFailure names why an authorization code exchange failed.
type ExchangeFailure string

const (
	ExchangeNetwork   ExchangeFailure = "network"
	ExchangeStatus    ExchangeFailure = "status"
	ExchangeMalformed ExchangeFailure = "malformed"
)

// AuthExchangeError reports a failed code-for-token exchange. It unwraps to both
// [shared.ErrAuthExchangeFailed] and the underlying cause.
type AuthExchangeError struct {
	Provider   string
	Reason     ExchangeFailure
	StatusCode int
	Err        error
}

func (e *AuthExchangeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %v (%s, HTTP %d): %v", e.Provider, shared.ErrAuthExchangeFailed, e.Reason, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s): %v", e.Provider, shared.ErrAuthExchangeFailed, e.Reason, e.Err)
}

func (e *AuthExchangeError) Unwrap() []error {
	return []error{shared.ErrAuthExchangeFailed, e.Err}
}

// AuthAdapter is the provider-specific half of the OAuth2 authorization-code flow.
type AuthAdapter interface {
	Name() string
	Slot() models.TokenSlot
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	Profile(ctx context.Context, token string) (string, error)
}

// OAuthAdapter implements the provider-independent parts of [AuthAdapter] over [oauth2.Config].
//
// Concrete providers embed it and supply Profile.
type OAuthAdapter struct {
	provider   string
	slot       models.TokenSlot
	config     *oauth2.Config
	httpClient *http.Client
}

func newOAuthAdapter(provider string, slot models.TokenSlot, creds shared.OAuthClientConfig, endpoint oauth2.Endpoint, defaultScopes []string, httpClient *http.Client) (*OAuthAdapter, error) {
	if creds.ClientID == "" {
		return nil, fmt.Errorf("%w: %s client_id", shared.ErrMissingConfig, provider)
	}
	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: %s client_secret", shared.ErrMissingConfig, provider)
	}

	scopes := creds.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}

	return &OAuthAdapter{
		provider: provider,
		slot:     slot,
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.RedirectURI,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		httpClient: httpClient,
	}, nil
}

func (a *OAuthAdapter) Name() string {
	return a.provider
}

func (a *OAuthAdapter) Slot() models.TokenSlot {
	return a.slot
}

// RedirectURL returns the configured callback URL.
func (a *OAuthAdapter) RedirectURL() string {
	return a.config.RedirectURL
}

// AuthCodeURL builds the provider authorization URL embedding client id, redirect URI, scopes and state.
func (a *OAuthAdapter) AuthCodeURL(state string) string {
	return a.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token.
//
// It never returns an empty token without an error and never retries.
func (a *OAuthAdapter) Exchange(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("%s: %w: %w: authorization code", a.provider, shared.ErrAuthExchangeFailed, shared.ErrMissingArgument)
	}

	if a.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	}

	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return "", a.classifyExchangeError(err)
	}

	if token == nil || token.AccessToken == "" {
		return "", &AuthExchangeError{Provider: a.provider, Reason: ExchangeMalformed, Err: errors.New("response carried no access token")}
	}

	return token.AccessToken, nil
}

func (a *OAuthAdapter) classifyExchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return &AuthExchangeError{Provider: a.provider, Reason: ExchangeStatus, StatusCode: status, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &AuthExchangeError{Provider: a.provider, Reason: ExchangeNetwork, Err: err}
	}

	return &AuthExchangeError{Provider: a.provider, Reason: ExchangeMalformed, Err: err}
}
