// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/boardsync/internal/services"
	"github.com/urfave/cli/v3"
)

// setupCommand handles setup operations for the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create config.toml if missing, open the identity store and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles the OAuth2 authorization code flow for each provider.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Connect a provider account",
		Commands: []*cli.Command{
			{
				Name:   services.ProviderPinterest,
				Usage:  "Authorize read access to your Pinterest boards",
				Action: r.AuthPinterest,
			},
			{
				Name:   services.ProviderMiro,
				Usage:  "Authorize write access to your Miro boards",
				Action: r.AuthMiro,
			},
			{
				Name:   "logout",
				Usage:  "Delete the linked identity and both stored tokens",
				Action: r.Logout,
			},
		},
	}
}

// statusCommand reports which providers are linked.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show linked providers and the account name behind each token",
		Action: r.Status,
	}
}

// boardsCommand lists boards on both providers.
func boardsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "boards",
		Usage: "List Pinterest and Miro boards",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.Boards,
	}
}

// syncCommand copies one Pinterest board onto one Miro board.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Copy the images of a Pinterest board onto a Miro board",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Usage:    "Pinterest board ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "dest",
				Aliases:  []string{"d"},
				Usage:    "Miro board ID",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the summary as JSON",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Summary format: text, csv or markdown",
				Value:   "text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Also write the summary to this file",
			},
		},
		Action: r.Sync,
	}
}

// serveCommand runs the browser flow.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web interface",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (defaults to server.host:server.port)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive board sync.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for board sync",
		Action:  r.TUI,
	}
}
