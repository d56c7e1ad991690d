package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/shared"
	"golang.org/x/oauth2"
)

func testCreds() shared.OAuthClientConfig {
	return shared.OAuthClientConfig{
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		RedirectURI:  "http://localhost:3000/auth/callback",
	}
}

func tokenServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, oauth2.Endpoint) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, oauth2.Endpoint{AuthURL: server.URL + "/authorize", TokenURL: server.URL + "/token"}
}

func TestNewProviders(t *testing.T) {
	t.Run("Missing Client ID", func(t *testing.T) {
		creds := testCreds()
		creds.ClientID = ""

		if _, err := NewPinterest(creds, shared.LimitsConfig{}); !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("Missing Client Secret", func(t *testing.T) {
		creds := testCreds()
		creds.ClientSecret = ""

		if _, err := NewMiro(creds, shared.LimitsConfig{}); !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("Slots", func(t *testing.T) {
		p, err := NewPinterest(testCreds(), shared.LimitsConfig{})
		if err != nil {
			t.Fatalf("failed to create pinterest: %v", err)
		}
		m, err := NewMiro(testCreds(), shared.LimitsConfig{})
		if err != nil {
			t.Fatalf("failed to create miro: %v", err)
		}

		if p.Name() != ProviderPinterest || p.Slot() != models.SourceSlot {
			t.Errorf("unexpected pinterest identity %s/%s", p.Name(), p.Slot())
		}
		if m.Name() != ProviderMiro || m.Slot() != models.DestinationSlot {
			t.Errorf("unexpected miro identity %s/%s", m.Name(), m.Slot())
		}
	})
}

func TestAuthCodeURL(t *testing.T) {
	t.Run("Pinterest", func(t *testing.T) {
		p, err := NewPinterest(testCreds(), shared.LimitsConfig{})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := p.AuthCodeURL("test_state")
		if !strings.HasPrefix(authURL, pinterestAuthURL) {
			t.Errorf("auth URL should start with the Pinterest authorize URL, got %s", authURL)
		}

		u, err := url.Parse(authURL)
		if err != nil {
			t.Fatalf("failed to parse auth URL: %v", err)
		}
		q := u.Query()
		if q.Get("client_id") != "test_client_id" {
			t.Error("auth URL should contain client_id")
		}
		if q.Get("state") != "test_state" {
			t.Error("auth URL should contain state")
		}
		if q.Get("redirect_uri") != "http://localhost:3000/auth/callback" {
			t.Errorf("unexpected redirect_uri %q", q.Get("redirect_uri"))
		}
		if q.Get("scope") != strings.Join(pinterestScopes, " ") {
			t.Errorf("unexpected scope %q", q.Get("scope"))
		}
	})

	t.Run("Miro configured scopes", func(t *testing.T) {
		creds := testCreds()
		creds.Scopes = []string{"boards:write"}
		m, err := NewMiro(creds, shared.LimitsConfig{})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		u, _ := url.Parse(m.AuthCodeURL("s"))
		if !strings.HasPrefix(m.AuthCodeURL("s"), miroAuthURL) {
			t.Errorf("auth URL should start with the Miro authorize URL")
		}
		if u.Query().Get("scope") != "boards:write" {
			t.Errorf("expected configured scopes, got %q", u.Query().Get("scope"))
		}
	})
}

func TestExchange(t *testing.T) {
	ctx := context.Background()

	t.Run("Pinterest sends basic auth", func(t *testing.T) {
		_, endpoint := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
			id, secret, ok := r.BasicAuth()
			if !ok || id != "test_client_id" || secret != "test_client_secret" {
				t.Errorf("expected basic client credentials, got %q %q %v", id, secret, ok)
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("failed to parse form: %v", err)
			}
			if r.PostForm.Get("code") != "abc" {
				t.Errorf("expected code abc, got %q", r.PostForm.Get("code"))
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"pina_token","token_type":"bearer"}`))
		})

		p, err := NewPinterest(testCreds(), shared.LimitsConfig{}, WithEndpoint(oauth2.Endpoint{
			AuthURL: endpoint.AuthURL, TokenURL: endpoint.TokenURL, AuthStyle: oauth2.AuthStyleInHeader,
		}))
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		token, err := p.Exchange(ctx, "abc")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "pina_token" {
			t.Errorf("expected pina_token, got %s", token)
		}
	})

	t.Run("Miro sends credentials in params", func(t *testing.T) {
		_, endpoint := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			if r.PostForm.Get("client_id") != "test_client_id" || r.PostForm.Get("client_secret") != "test_client_secret" {
				t.Errorf("expected client credentials in form, got %v", r.PostForm)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"miro_token","token_type":"bearer"}`))
		})

		m, err := NewMiro(testCreds(), shared.LimitsConfig{}, WithEndpoint(oauth2.Endpoint{
			AuthURL: endpoint.AuthURL, TokenURL: endpoint.TokenURL, AuthStyle: oauth2.AuthStyleInParams,
		}))
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		token, err := m.Exchange(ctx, "abc")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "miro_token" {
			t.Errorf("expected miro_token, got %s", token)
		}
	})

	t.Run("Classifies failures", func(t *testing.T) {
		tt := []struct {
			name    string
			handler http.HandlerFunc
			reason  ExchangeFailure
		}{
			{
				name: "non-2xx response",
				handler: func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusBadRequest)
					w.Write([]byte(`{"error":"invalid_grant"}`))
				},
				reason: ExchangeStatus,
			},
			{
				name: "missing access token",
				handler: func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.Write([]byte(`{"token_type":"bearer"}`))
				},
				reason: ExchangeMalformed,
			},
			{
				name: "empty access token",
				handler: func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.Write([]byte(`{"access_token":"","token_type":"bearer"}`))
				},
				reason: ExchangeMalformed,
			},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				_, endpoint := tokenServer(t, tc.handler)
				endpoint.AuthStyle = oauth2.AuthStyleInParams

				m, err := NewMiro(testCreds(), shared.LimitsConfig{}, WithEndpoint(endpoint))
				if err != nil {
					t.Fatalf("failed to create service: %v", err)
				}

				token, err := m.Exchange(ctx, "abc")
				if token != "" {
					t.Errorf("expected empty token on failure, got %q", token)
				}
				if !errors.Is(err, shared.ErrAuthExchangeFailed) {
					t.Fatalf("expected ErrAuthExchangeFailed, got %v", err)
				}

				var exErr *AuthExchangeError
				if !errors.As(err, &exErr) {
					t.Fatalf("expected AuthExchangeError, got %T", err)
				}
				if exErr.Reason != tc.reason {
					t.Errorf("expected reason %s, got %s", tc.reason, exErr.Reason)
				}
				if exErr.Provider != ProviderMiro {
					t.Errorf("expected provider miro, got %s", exErr.Provider)
				}
			})
		}
	})

	t.Run("Network failure", func(t *testing.T) {
		server, endpoint := tokenServer(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()
		endpoint.AuthStyle = oauth2.AuthStyleInHeader

		p, err := NewPinterest(testCreds(), shared.LimitsConfig{}, WithEndpoint(endpoint))
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		_, err = p.Exchange(ctx, "abc")
		var exErr *AuthExchangeError
		if !errors.As(err, &exErr) || exErr.Reason != ExchangeNetwork {
			t.Errorf("expected network AuthExchangeError, got %v", err)
		}
	})

	t.Run("Empty code", func(t *testing.T) {
		p, err := NewPinterest(testCreds(), shared.LimitsConfig{})
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		_, err = p.Exchange(ctx, "")
		if !errors.Is(err, shared.ErrAuthExchangeFailed) || !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected missing code error, got %v", err)
		}
	})
}

func TestRegistry(t *testing.T) {
	p, _ := NewPinterest(testCreds(), shared.LimitsConfig{})
	m, _ := NewMiro(testCreds(), shared.LimitsConfig{})
	r := NewRegistry(p, m)

	if a, err := r.Get(ProviderMiro); err != nil || a.Name() != ProviderMiro {
		t.Errorf("expected miro adapter, got %v %v", a, err)
	}
	_, err := r.Get("dropbox")
	if !errors.Is(err, ErrUnknownProvider) || !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrUnknownProvider for unknown provider, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "pinterest, miro") {
		t.Errorf("expected known providers in %q", err.Error())
	}
	if a, err := r.ForSlot(models.SourceSlot); err != nil || a.Name() != ProviderPinterest {
		t.Errorf("expected pinterest for source slot, got %v %v", a, err)
	}
	if _, err := NewRegistry(p).ForSlot(models.DestinationSlot); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for unfilled slot, got %v", err)
	}
	if names := r.Names(); len(names) != 2 || names[0] != ProviderPinterest {
		t.Errorf("unexpected names %v", names)
	}
}
