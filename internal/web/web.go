package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/server"
	"github.com/desertthunder/boardsync/internal/services"
	"github.com/desertthunder/boardsync/internal/shared"
	"github.com/desertthunder/boardsync/internal/tasks"
)

//go:embed templates/*.html
var templateFiles embed.FS

const (
	sessionCookie     = "boardsync_session"
	stateCookiePrefix = "oauth_state_"
	tokenCookieSuffix = "_token"
	stateTTL          = 10 * time.Minute
)

// BoardLister lists the boards of both providers.
type BoardLister interface {
	ListBoards(ctx context.Context, sourceToken, destinationToken string) (*models.BoardListing, error)
}

// Syncer runs one board sync.
type Syncer interface {
	Sync(ctx context.Context, req tasks.SyncRequest, progress chan<- tasks.ProgressUpdate) (*models.SyncSummary, error)
}

// Reconciler links an issued token to an identity record.
type Reconciler interface {
	Reconcile(ctx context.Context, currentID, incomingToken string, slot models.TokenSlot, fallbackToken string) (*models.Identity, tasks.Match, error)
}

// Options holds the collaborators of the web app.
type Options struct {
	Source        services.AuthAdapter
	Destination   services.AuthAdapter
	Store         models.IdentityStore
	Reconciler    Reconciler
	Lister        BoardLister
	Pipeline      Syncer
	SessionSecret string
	SecureCookies bool
	Logger        *log.Logger
}

// App serves the browser flow: connect both providers, pick boards, sync.
type App struct {
	source      services.AuthAdapter
	destination services.AuthAdapter
	registry    *services.Registry
	store       models.IdentityStore
	reconciler  Reconciler
	lister      BoardLister
	pipeline    Syncer
	sessions    *SessionCodec
	templates   *template.Template
	secure      bool
	logger      *log.Logger
}

// New validates opts and parses the page templates.
func New(opts Options) (*App, error) {
	if opts.Source == nil || opts.Destination == nil {
		return nil, fmt.Errorf("%w: both providers are required", shared.ErrInvalidConfig)
	}
	if opts.Reconciler == nil || opts.Lister == nil || opts.Pipeline == nil {
		return nil, fmt.Errorf("%w: reconciler, lister and pipeline are required", shared.ErrInvalidConfig)
	}

	sessions, err := NewSessionCodec(opts.SessionSecret, 0)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &App{
		source:      opts.Source,
		destination: opts.Destination,
		registry:    services.NewRegistry(opts.Source, opts.Destination),
		store:       opts.Store,
		reconciler:  opts.Reconciler,
		lister:      opts.Lister,
		pipeline:    opts.Pipeline,
		sessions:    sessions,
		templates:   tmpl,
		secure:      opts.SecureCookies,
		logger:      logger,
	}, nil
}

// Register adds the app routes to router.
func (a *App) Register(router *server.BasicRouter) {
	router.HandleFunc(http.MethodGet, "/{$}", a.Index)
	router.HandleFunc(http.MethodGet, "/auth/{provider}", a.Authorize)
	router.HandleFunc(http.MethodGet, "/auth/{provider}/callback", a.Callback)
	router.HandleFunc(http.MethodGet, "/boards", a.Boards)
	router.HandleFunc(http.MethodPost, "/sync", a.Sync)
}

// Handler returns the app behind a router with request logging and panic recovery.
func (a *App) Handler() http.Handler {
	router := server.NewBasicRouter()
	router.Use(server.Recover(a.logger), server.Logging(a.logger))
	a.Register(router)
	return router
}

type providerStatus struct {
	Name   string
	Label  string
	Linked bool
}

// Index shows which providers are connected.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	sourceToken, destinationToken, err := a.tokens(r)
	if err != nil {
		a.renderError(w, err, "")
		return
	}
	a.render(w, http.StatusOK, "index", map[string]any{
		"Title": "boardsync",
		"Providers": []providerStatus{
			{Name: a.source.Name(), Label: "Pinterest", Linked: sourceToken != ""},
			{Name: a.destination.Name(), Label: "Miro", Linked: destinationToken != ""},
		},
	})
}

// Authorize starts the OAuth flow for the provider in the path.
func (a *App) Authorize(w http.ResponseWriter, r *http.Request) {
	adapter, err := a.registry.Get(r.PathValue("provider"))
	if err != nil {
		a.renderError(w, err, "")
		return
	}

	state, err := shared.GenerateState()
	if err != nil {
		a.renderError(w, fmt.Errorf("failed to generate state token: %w", err), "")
		return
	}

	a.setCookie(w, stateCookiePrefix+adapter.Name(), state, stateTTL)
	http.Redirect(w, r, adapter.AuthCodeURL(state), http.StatusFound)
}

// Callback completes the OAuth flow: verifies state, exchanges the code and links the token.
func (a *App) Callback(w http.ResponseWriter, r *http.Request) {
	adapter, err := a.registry.Get(r.PathValue("provider"))
	if err != nil {
		a.renderError(w, err, "")
		return
	}
	logger := a.logger.With("provider", adapter.Name())

	stateName := stateCookiePrefix + adapter.Name()
	expected := cookieValue(r, stateName)
	a.clearCookie(w, stateName)
	if expected == "" || r.URL.Query().Get("state") != expected {
		logger.Warn("callback state mismatch")
		a.renderError(w, shared.ErrInvalidState, adapter.Name())
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		reason := r.URL.Query().Get("error")
		logger.Warn("authorization denied", "error", reason)
		a.renderError(w, fmt.Errorf("%w: %s", shared.ErrForbidden, reason), adapter.Name())
		return
	}

	token, err := adapter.Exchange(r.Context(), code)
	if err != nil {
		logger.Error("token exchange failed", "error", err)
		a.renderError(w, err, adapter.Name())
		return
	}

	other, err := a.registry.ForSlot(adapter.Slot().Other())
	if err != nil {
		a.renderError(w, err, "")
		return
	}

	identity, match, err := a.reconciler.Reconcile(r.Context(), a.identityID(r), token, adapter.Slot(), cookieValue(r, other.Name()+tokenCookieSuffix))
	if err != nil {
		logger.Error("failed to link token", "error", err)
		a.renderError(w, err, "")
		return
	}

	session, err := a.sessions.Encode(identity.ID)
	if err != nil {
		a.renderError(w, err, "")
		return
	}

	a.setCookie(w, adapter.Name()+tokenCookieSuffix, token, defaultSessionTTL)
	a.setCookie(w, sessionCookie, session, defaultSessionTTL)
	logger.Info("provider connected", "identity", identity.ID, "match", match)

	http.Redirect(w, r, "/boards", http.StatusFound)
}

// Boards renders the board selection form, sending the user to whichever provider is not connected yet.
func (a *App) Boards(w http.ResponseWriter, r *http.Request) {
	sourceToken, destinationToken, err := a.tokens(r)
	if err != nil {
		a.logger.Error("failed to read stored tokens", "error", err)
		a.renderError(w, err, "")
		return
	}
	if sourceToken == "" {
		http.Redirect(w, r, "/auth/"+a.source.Name(), http.StatusFound)
		return
	}
	if destinationToken == "" {
		http.Redirect(w, r, "/auth/"+a.destination.Name(), http.StatusFound)
		return
	}

	listing, err := a.lister.ListBoards(r.Context(), sourceToken, destinationToken)
	if err != nil {
		a.renderError(w, err, providerOf(err))
		return
	}

	a.render(w, http.StatusOK, "boards", map[string]any{
		"Title":   "Choose boards",
		"Listing": listing,
	})
}

// Sync runs the pipeline for the posted board pair. It requires a valid session.
func (a *App) Sync(w http.ResponseWriter, r *http.Request) {
	if a.identityID(r) == "" {
		a.renderError(w, fmt.Errorf("%w: no session", shared.ErrMissingCredential), a.source.Name())
		return
	}

	if err := r.ParseForm(); err != nil {
		a.renderError(w, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err), "")
		return
	}

	sourceToken, destinationToken, err := a.tokens(r)
	if err != nil {
		a.logger.Error("failed to read stored tokens", "error", err)
		a.renderError(w, err, "")
		return
	}
	req := tasks.SyncRequest{
		SourceToken:        sourceToken,
		DestinationToken:   destinationToken,
		SourceBoardID:      r.PostForm.Get("source_board"),
		DestinationBoardID: r.PostForm.Get("destination_board"),
	}

	summary, err := a.pipeline.Sync(r.Context(), req, nil)
	if err != nil {
		a.renderError(w, err, providerOf(err))
		return
	}

	a.render(w, http.StatusOK, "summary", map[string]any{
		"Title":   "Sync complete",
		"Summary": summary,
	})
}

// identityID returns the identity from a valid session cookie, or "".
func (a *App) identityID(r *http.Request) string {
	raw := cookieValue(r, sessionCookie)
	if raw == "" {
		return ""
	}
	id, err := a.sessions.Decode(raw)
	if err != nil {
		a.logger.Debug("ignoring session cookie", "error", err)
		return ""
	}
	return id
}

// tokens reads both provider tokens from cookies, filling gaps from the session's identity record.
// A missing identity leaves the gaps empty; any other store failure is returned.
func (a *App) tokens(r *http.Request) (string, string, error) {
	sourceToken := cookieValue(r, a.source.Name()+tokenCookieSuffix)
	destinationToken := cookieValue(r, a.destination.Name()+tokenCookieSuffix)

	if (sourceToken != "" && destinationToken != "") || a.store == nil {
		return sourceToken, destinationToken, nil
	}

	id := a.identityID(r)
	if id == "" {
		return sourceToken, destinationToken, nil
	}

	identity, err := a.store.FindByID(r.Context(), id)
	if errors.Is(err, shared.ErrIdentityNotFound) {
		return sourceToken, destinationToken, nil
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to load identity %s: %w", id, err)
	}

	if sourceToken == "" {
		sourceToken = identity.SourceToken
	}
	if destinationToken == "" {
		destinationToken = identity.DestinationToken
	}
	return sourceToken, destinationToken, nil
}

func (a *App) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		a.logger.Error("failed to render template", "template", name, "error", err)
	}
}

func (a *App) renderError(w http.ResponseWriter, err error, provider string) {
	status, message := errorResponse(err)
	if status != http.StatusUnauthorized {
		provider = ""
	}
	a.render(w, status, "error", map[string]any{
		"Title":    http.StatusText(status),
		"Message":  message,
		"Provider": provider,
	})
}

func (a *App) setCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *App) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: a.secure})
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
