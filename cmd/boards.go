package main

import (
	"context"

	"github.com/desertthunder/boardsync/internal/formatter"
	"github.com/urfave/cli/v3"
)

// Boards lists the boards of both providers for the linked identity.
func (r *Runner) Boards(ctx context.Context, cmd *cli.Command) error {
	if err := r.init(ctx); err != nil {
		return err
	}

	identity, err := r.identity(ctx)
	if err != nil {
		return err
	}

	listing, err := r.lister.ListBoards(ctx, identity.SourceToken, identity.DestinationToken)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(listing, cmd.Bool("pretty"))
	}

	_, err = r.output.Write(formatter.BoardsToText(listing))
	return err
}
