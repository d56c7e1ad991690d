// package services implements the provider HTTP clients for Pinterest and Miro
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/shared"
	"golang.org/x/oauth2"
)

// Provider names as they appear in routes, cookies and errors.
const (
	ProviderPinterest = "pinterest"
	ProviderMiro      = "miro"
)

// BoardProvider lists the authenticated user's boards.
type BoardProvider interface {
	ListBoards(ctx context.Context, token string) ([]models.Board, error)
}

// ItemSource fetches every item on a source board, paginating transparently.
type ItemSource interface {
	ListItems(ctx context.Context, token, boardID string) ([]models.SourceItem, error)
}

// ItemSink creates an image item on a destination board and returns its identifier.
type ItemSink interface {
	CreateImage(ctx context.Context, token, boardID, imageURL, title string) (string, error)
}

// Option customises a provider client.
type Option func(*options)

type options struct {
	baseURL    string
	endpoint   *oauth2.Endpoint
	httpClient *http.Client
	logger     *log.Logger
}

// WithBaseURL overrides the REST API base URL.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithEndpoint overrides the OAuth2 authorize and token URLs.
func WithEndpoint(e oauth2.Endpoint) Option {
	return func(o *options) { o.endpoint = &e }
}

// WithHTTPClient sets the client used for both API and token requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(baseURL string, endpoint oauth2.Endpoint, opts []Option) options {
	o := options{baseURL: baseURL, endpoint: &endpoint}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// ErrUnknownProvider is returned for a provider name with no registered adapter.
var ErrUnknownProvider = fmt.Errorf("%w: unknown provider", shared.ErrInvalidArgument)

// Registry looks up auth adapters by provider name.
type Registry struct {
	adapters map[string]AuthAdapter
	order    []string
}

// NewRegistry indexes adapters by their Name.
func NewRegistry(adapters ...AuthAdapter) *Registry {
	r := &Registry{adapters: make(map[string]AuthAdapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
		r.order = append(r.order, a.Name())
	}
	return r
}

// Get returns the adapter registered as name.
func (r *Registry) Get(name string) (AuthAdapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, expected one of %s", ErrUnknownProvider, name, strings.Join(r.Names(), ", "))
	}
	return a, nil
}

// ForSlot returns the adapter that fills slot.
func (r *Registry) ForSlot(slot models.TokenSlot) (AuthAdapter, error) {
	for _, name := range r.order {
		if a := r.adapters[name]; a.Slot() == slot {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: no provider for %s slot", shared.ErrInvalidArgument, slot)
}

// Names returns the registered provider names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
