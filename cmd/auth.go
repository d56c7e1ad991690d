package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/boardsync/internal/server"
	"github.com/desertthunder/boardsync/internal/services"
	"github.com/desertthunder/boardsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthPinterest links a Pinterest token to the local identity.
func (r *Runner) AuthPinterest(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.authorize(ctx, r.source)
}

// AuthMiro links a Miro token to the local identity.
func (r *Runner) AuthMiro(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.authorize(ctx, r.destination)
}

// authorize runs the authorization code flow for adapter, reconciles the issued token into the
// identity store and records the identity id in the config file.
func (r *Runner) authorize(ctx context.Context, adapter services.AuthAdapter) error {
	token, err := r.doOAuth(ctx, adapter)
	if err != nil {
		return err
	}

	config := r.cfg()
	identity, match, err := r.reconciler.Reconcile(ctx, config.Session.IdentityID, token, adapter.Slot(), "")
	if err != nil {
		return err
	}

	config.Session.IdentityID = identity.ID
	if err := shared.SaveConfig(r.configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.logger.Info("identity linked", "provider", adapter.Name(), "identity", identity.ID, "match", match)

	r.writePlainln("✓ %s connected", adapter.Name())
	r.writePlain("  Identity: %s\n", identity.ID)
	if identity.Linked() {
		r.writePlain("  Both providers linked. Run `boardsync boards` to pick a board pair.\n")
	} else {
		r.writePlain("  Connect the other provider to finish linking.\n")
	}
	return nil
}

// Logout deletes the local identity and clears it from the config file.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(ctx); err != nil {
		return err
	}

	config := r.cfg()
	id := config.Session.IdentityID
	if id == "" {
		return r.writePlain("No linked identity.\n")
	}

	deleter, ok := r.store.(interface {
		Delete(ctx context.Context, id string) error
	})
	if !ok {
		return fmt.Errorf("%w: identity store does not support deletion", shared.ErrInvalidArgument)
	}
	if err := deleter.Delete(ctx, id); err != nil && !errors.Is(err, shared.ErrIdentityNotFound) {
		return err
	}

	config.Session.IdentityID = ""
	if err := shared.SaveConfig(r.configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.logger.Info("identity deleted", "identity", id)
	return r.writePlain("✓ Identity %s deleted\n", id)
}

// redirectURI returns the callback URL registered for adapter.
func (r *Runner) redirectURI(adapter services.AuthAdapter) string {
	if a, ok := adapter.(interface{ RedirectURL() string }); ok && a.RedirectURL() != "" {
		return a.RedirectURL()
	}

	creds := r.cfg().Credentials
	if adapter.Name() == services.ProviderMiro {
		return creds.Miro.RedirectURI
	}
	return creds.Pinterest.RedirectURI
}

// callbackAddr splits a redirect URI into the local listen address and the callback path.
func callbackAddr(redirectURI string) (string, string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Host == "" {
		return "", "", fmt.Errorf("%w: redirect_uri %q", shared.ErrInvalidConfig, redirectURI)
	}

	host := u.Host
	if u.Port() == "" {
		host = net.JoinHostPort(u.Hostname(), "80")
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return host, path, nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(ctx context.Context, adapter services.AuthAdapter) (string, error) {
	addr, path, err := callbackAddr(r.redirectURI(adapter))
	if err != nil {
		return "", err
	}

	state, err := shared.GenerateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}

	oauthHandler := server.NewOAuthHandler(adapter, state, path)
	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger))
	router.Handler(oauthHandler)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpServer := server.NewHTTPServer(addr, router)
	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("starting OAuth callback server", "provider", adapter.Name(), "addr", addr)
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	authURL := adapter.AuthCodeURL(state)
	r.writePlain("→ Opening browser for %s authorization...\n", adapter.Name())
	if err := r.openBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%s timeout)...\n", r.authTimeout)

	timeout := time.NewTimer(r.authTimeout)
	defer timeout.Stop()

	var result server.OAuthResult
	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return "", fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return "", fmt.Errorf("%w: authorization timed out after %s", shared.ErrTimeout, r.authTimeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}

	if result.Error() != nil {
		return "", fmt.Errorf("authorization failed: %w", result.Error())
	}
	if result.Token == "" {
		return "", fmt.Errorf("%w: no token received", shared.ErrAuthExchangeFailed)
	}

	return result.Token, nil
}
