// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/shared"
)

// MemoryStore is an in-memory [models.IdentityStore].
//
// Err, when set, is returned from every method to simulate an unavailable store.
type MemoryStore struct {
	mu         sync.Mutex
	identities map[string]*models.Identity
	order      []string
	next       int
	Err        error
	Inserts    int
	Updates    int
}

func NewMemoryStore(seed ...*models.Identity) *MemoryStore {
	s := &MemoryStore{identities: map[string]*models.Identity{}}
	for _, identity := range seed {
		cp := *identity
		s.identities[cp.ID] = &cp
		s.order = append(s.order, cp.ID)
	}
	return s
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	identity, ok := s.identities[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrIdentityNotFound, id)
	}
	cp := *identity
	return &cp, nil
}

func (s *MemoryStore) FindByToken(ctx context.Context, slot models.TokenSlot, token string) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := len(s.order) - 1; i >= 0; i-- {
		identity := s.identities[s.order[i]]
		if token != "" && identity.Token(slot) == token {
			cp := *identity
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: no identity holds that %s token", shared.ErrIdentityNotFound, slot)
}

func (s *MemoryStore) Insert(ctx context.Context, identity *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.next++
	identity.ID = fmt.Sprintf("identity-%d", s.next)
	if err := identity.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	cp := *identity
	s.identities[cp.ID] = &cp
	s.order = append(s.order, cp.ID)
	s.Inserts++
	return nil
}

func (s *MemoryStore) UpdateToken(ctx context.Context, id string, slot models.TokenSlot, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if token == "" {
		return fmt.Errorf("%w: refusing to clear %s token", shared.ErrInvalidArgument, slot)
	}
	identity, ok := s.identities[id]
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrIdentityNotFound, id)
	}
	identity.SetToken(slot, token)
	s.Updates++
	return nil
}

// Len returns the number of stored identities.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.identities[id]; !ok {
		return fmt.Errorf("%w: %s", shared.ErrIdentityNotFound, id)
	}
	delete(s.identities, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.identities)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
