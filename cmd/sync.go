package main

import (
	"context"

	"github.com/desertthunder/boardsync/internal/formatter"
	"github.com/desertthunder/boardsync/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Sync copies the images of one Pinterest board onto one Miro board.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	asJSON := cmd.Bool("json")
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	if err := r.init(ctx); err != nil {
		return err
	}

	identity, err := r.identity(ctx)
	if err != nil {
		return err
	}

	req := tasks.SyncRequest{
		SourceToken:        identity.SourceToken,
		DestinationToken:   identity.DestinationToken,
		SourceBoardID:      cmd.String("source"),
		DestinationBoardID: cmd.String("dest"),
	}

	r.logger.Info("starting sync", "source", req.SourceBoardID, "dest", req.DestinationBoardID)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			if asJSON {
				continue
			}
			switch update.Phase {
			case tasks.FetchItems:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.TransferItems:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	summary, err := r.pipeline.Sync(ctx, req, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteSummary(summary, format, path); err != nil {
			return err
		}
		r.logger.Info("summary written", "path", path)
	}

	if asJSON {
		return r.writeJSON(summary, true)
	}

	if format == formatter.FormatText {
		r.writePlain("\n")
		r.writePlainHeader("Sync Complete!")
	}
	return formatter.Fprint(r.output, summary, format)
}
