package shared

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateState(t *testing.T) {
	first, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}
	second, err := GenerateState()
	if err != nil {
		t.Fatalf("GenerateState() error = %v", err)
	}

	if first == "" || first == second {
		t.Errorf("expected unique non-empty states, got %q and %q", first, second)
	}
	if strings.ContainsAny(first, "+/=") {
		t.Errorf("state should be URL safe, got %q", first)
	}
}

func TestRedact(t *testing.T) {
	tc := []struct {
		name  string
		token string
		want  string
	}{
		{name: "long token", token: "pina_abcdef1234", want: "****1234"},
		{name: "short token", token: "abc", want: "***"},
		{name: "empty", token: "", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redact(tt.token); got != tt.want {
				t.Errorf("Redact() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingCredentialError(t *testing.T) {
	err := fmt.Errorf("listing boards: %w", &MissingCredentialError{Provider: "miro"})

	if !errors.Is(err, ErrMissingCredential) {
		t.Error("expected error to match ErrMissingCredential")
	}

	var mce *MissingCredentialError
	if !errors.As(err, &mce) || mce.Provider != "miro" {
		t.Errorf("expected MissingCredentialError for miro, got %v", err)
	}

	if !NeedsReauthorization(err) {
		t.Error("missing credential should require reauthorization")
	}
	if NeedsReauthorization(ErrForbidden) {
		t.Error("forbidden should not require reauthorization")
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "boardsync.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.Info("hello")
}
