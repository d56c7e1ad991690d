package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/boardsync/internal/shared"
	tu "github.com/desertthunder/boardsync/internal/testing"
)

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("sends bearer token and decodes result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("expected bearer header, got %q", got)
			}
			if r.URL.Path != "/things" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"name":"thing"}`))
		}))
		defer server.Close()

		c := NewClient("test", server.URL, server.Client(), shared.LimitsConfig{}, nil)

		var result struct {
			Name string `json:"name"`
		}
		if err := c.Do(ctx, http.MethodGet, "/things", "tok", nil, &result); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Name != "thing" {
			t.Errorf("expected name thing, got %s", result.Name)
		}
	})

	t.Run("encodes JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %q", ct)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		c := NewClient("test", server.URL, server.Client(), shared.LimitsConfig{}, nil)
		if err := c.Do(ctx, http.MethodPost, "/things", "tok", map[string]string{"a": "b"}, nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("missing token fails before any request", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		c := NewClient("test", server.URL, server.Client(), shared.LimitsConfig{}, nil)
		err := c.Do(ctx, http.MethodGet, "/things", "", nil, nil)
		if !errors.Is(err, shared.ErrMissingCredential) {
			t.Errorf("expected ErrMissingCredential, got %v", err)
		}
		if calls != 0 {
			t.Errorf("expected no requests, got %d", calls)
		}
	})

	t.Run("classifies status codes", func(t *testing.T) {
		tt := []struct {
			status int
			want   error
		}{
			{http.StatusBadRequest, shared.ErrMalformedRequest},
			{http.StatusUnauthorized, shared.ErrUnauthenticated},
			{http.StatusForbidden, shared.ErrForbidden},
			{http.StatusNotFound, shared.ErrResourceNotFound},
			{http.StatusTooManyRequests, shared.ErrProviderError},
			{http.StatusInternalServerError, shared.ErrProviderError},
		}

		for _, tc := range tt {
			t.Run(http.StatusText(tc.status), func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tc.status)
					w.Write([]byte(`{"message":"nope"}`))
				}))
				defer server.Close()

				c := NewClient("test", server.URL, server.Client(), shared.LimitsConfig{}, nil)
				err := c.Do(ctx, http.MethodGet, "/", "tok", nil, nil)
				if !errors.Is(err, tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}

				var pe *ProviderError
				if !errors.As(err, &pe) {
					t.Fatalf("expected ProviderError, got %T", err)
				}
				if pe.StatusCode != tc.status || pe.Message != "nope" || pe.Provider != "test" {
					t.Errorf("unexpected error detail: %+v", pe)
				}
			})
		}
	})

	t.Run("network failure is unreachable", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
		c := NewClient("test", "http://provider.invalid", client, shared.LimitsConfig{}, nil)

		err := c.Do(ctx, http.MethodGet, "/", "tok", nil, nil)
		if !errors.Is(err, shared.ErrProviderUnreachable) {
			t.Errorf("expected ErrProviderUnreachable, got %v", err)
		}
		var pe *ProviderError
		if errors.As(err, &pe) && pe.StatusCode != 0 {
			t.Errorf("expected no status code, got %d", pe.StatusCode)
		}
	})

	t.Run("undecodable body is malformed response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		c := NewClient("test", server.URL, server.Client(), shared.LimitsConfig{}, nil)
		var result map[string]any
		err := c.Do(ctx, http.MethodGet, "/", "tok", nil, &result)
		if !errors.Is(err, shared.ErrMalformedResponse) {
			t.Errorf("expected ErrMalformedResponse, got %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		c := NewClient("test", "http://provider.invalid", nil, shared.LimitsConfig{RequestsPerSecond: 1, Burst: 1}, nil)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := c.Do(cctx, http.MethodGet, "/", "tok", nil, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestErrorMessage(t *testing.T) {
	tt := []struct {
		name string
		body string
		want string
	}{
		{name: "message field", body: `{"message":"bad board"}`, want: "bad board"},
		{name: "error field", body: `{"error":"invalid_token"}`, want: "invalid_token"},
		{name: "plain text", body: "  upstream down \n", want: "upstream down"},
		{name: "empty", body: "", want: ""},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := errorMessage(strings.NewReader(tc.body)); got != tc.want {
				t.Errorf("errorMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}
