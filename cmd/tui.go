package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/boardsync/internal/formatter"
	"github.com/desertthunder/boardsync/internal/shared"
	"github.com/desertthunder/boardsync/internal/ui"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for board sync.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("%w: tui requires a terminal, use `boardsync sync` instead", shared.ErrInvalidArgument)
	}

	// Logs go to a file so they do not interfere with rendering
	fileLogger, err := shared.NewFileLogger("./tmp/boardsync-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	if err := r.init(ctx); err != nil {
		return err
	}

	identity, err := r.identity(ctx)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, r.lister, r.pipeline, identity.SourceToken, identity.DestinationToken)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if summary := model.Summary(); summary != nil {
		return formatter.Fprint(r.output, summary, formatter.FormatText)
	}
	return nil
}
