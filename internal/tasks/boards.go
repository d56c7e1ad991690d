package tasks

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boardsync/internal/models"
	"github.com/desertthunder/boardsync/internal/services"
	"github.com/desertthunder/boardsync/internal/shared"
	"golang.org/x/sync/errgroup"
)

// NamedBoardProvider is a [services.BoardProvider] that reports its provider name.
type NamedBoardProvider interface {
	Name() string
	services.BoardProvider
}

// BoardLister reads the boards of both providers for one user.
type BoardLister struct {
	source      NamedBoardProvider
	destination NamedBoardProvider
	logger      *log.Logger
}

func NewBoardLister(source, destination NamedBoardProvider, logger *log.Logger) *BoardLister {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BoardLister{source: source, destination: destination, logger: logger}
}

// ListBoards lists source and destination boards concurrently.
//
// A missing token fails with [*shared.MissingCredentialError] before any request is made.
// Provider failures are returned as classified by [services.Client].
func (l *BoardLister) ListBoards(ctx context.Context, sourceToken, destinationToken string) (*models.BoardListing, error) {
	if sourceToken == "" {
		return nil, &shared.MissingCredentialError{Provider: l.source.Name()}
	}
	if destinationToken == "" {
		return nil, &shared.MissingCredentialError{Provider: l.destination.Name()}
	}

	listing := &models.BoardListing{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		boards, err := l.source.ListBoards(gctx, sourceToken)
		listing.Source = boards
		return err
	})
	g.Go(func() error {
		boards, err := l.destination.ListBoards(gctx, destinationToken)
		listing.Destination = boards
		return err
	})

	if err := g.Wait(); err != nil {
		l.logger.Warn("board listing failed", "error", err)
		return nil, err
	}

	l.logger.Debug("listed boards", "source", len(listing.Source), "destination", len(listing.Destination))
	return listing, nil
}
