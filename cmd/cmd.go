// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/tunestream/internal/formatter"
	"github.com/desertthunder/tunestream/internal/services"
	"github.com/urfave/cli/v3"
)

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (" + strings.Join(formatter.Formats, ", ") + ")",
			Value:   formatter.FormatText,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to a file instead of stdout",
		},
	}
}

func catalogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "mock",
			Usage: "Use the built-in catalog even when credentials are configured",
		},
		&cli.BoolFlag{
			Name:  "live",
			Usage: "Require the live YouTube catalog",
		},
	}
}

func limitFlag(value int) cli.Flag {
	return &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   "Maximum number of tracks (0 for all)",
		Value:   value,
	}
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "Search the catalog for tracks",
		ArgsUsage: "<query>",
		Flags:     flags(formatFlags(), catalogFlags(), []cli.Flag{limitFlag(0)}),
		Action:    r.Search,
	}
}

func trendingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "trending",
		Usage:  "List trending tracks",
		Flags:  flags(formatFlags(), catalogFlags(), []cli.Flag{limitFlag(0)}),
		Action: r.Trending,
	}
}

func recommendCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"rec"},
		Usage:   "List recommended tracks",
		Flags:   flags(formatFlags(), catalogFlags(), []cli.Flag{limitFlag(services.RecommendationLimit)}),
		Action:  r.Recommend,
	}
}

func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "play",
		Aliases: []string{"tui"},
		Usage:   "Launch the interactive player",
		Flags: flags(catalogFlags(), []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record plays",
			},
		}),
		Action: r.Play,
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the local HTTP control API",
		Flags: flags(catalogFlags(), []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (defaults to server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (defaults to server.port)",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record plays",
			},
		}),
		Action: r.Serve,
	}
}

func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recently played tracks",
		Flags: flags(formatFlags(), []cli.Flag{
			limitFlag(20),
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Delete the listening history",
			},
			&cli.BoolFlag{
				Name:  "likes",
				Usage: "Show liked tracks instead of plays",
			},
		}),
		Action: r.History,
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the most recent database migration",
				Action: r.SetupRollback,
			},
			{
				Name:   "config",
				Usage:  "Write a config file from the default template",
				Action: r.SetupConfig,
			},
		},
	}
}
