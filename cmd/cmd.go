// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func catalogFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "catalog",
		Usage: "Read the catalog from this JSON file instead of the configured source",
	}
}

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, markdown, csv, json",
			Value:   "text",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to this file instead of stdout",
		},
	}
}

func userFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "User ID (default: curation.default_user)",
	}
}

func atFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:  "at",
		Usage: usage + " (HH, HH:MM or RFC 3339; default: now)",
	}
}

// moodsCommand lists the playlist templates and the keywords behind each mood
func moodsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "moods",
		Usage: "List the mood playlists and the keywords that select them",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Moods,
	}
}

// classifyCommand tags catalog items with moods
func classifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "classify",
		Usage: "Show the moods of each catalog item",
		Flags: []cli.Flag{
			catalogFlag(),
			&cli.StringFlag{
				Name:  "item",
				Usage: "Only classify the item with this ID",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Classify,
	}
}

// playlistsCommand generates the eight mood playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"generate", "gen"},
		Usage:   "Generate one playlist per mood from the catalog",
		Flags: append([]cli.Flag{
			catalogFlag(),
			&cli.BoolFlag{
				Name:  "cache",
				Usage: "Store the loaded catalog in the local database",
			},
			&cli.StringFlag{
				Name:    "mood",
				Aliases: []string{"m"},
				Usage:   "Only output the playlist for this mood",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print how many items carry each mood",
			},
		}, formatFlags()...),
		Action: r.Playlists,
	}
}

// suggestCommand lists playlists for a time of day
func suggestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Suggest playlists for a time of day",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "time",
				Aliases: []string{"t"},
				Usage:   "Period: morning, afternoon, evening, night (default: current hour)",
			},
		}, formatFlags()...),
		Action: r.Suggest,
	}
}

// forYouCommand ranks playlists by viewing history
func forYouCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "foryou",
		Aliases: []string{"for-you"},
		Usage:   "Rank playlists by viewing history and time of day",
		Flags: append([]cli.Flag{
			userFlag(),
			atFlag("Time used for the time-of-day blend; users without history always get the current hour"),
		}, formatFlags()...),
		Action: r.ForYou,
	}
}

// catalogCommand manages the local catalog cache
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Manage the local catalog",
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Import a catalog into the local database",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.CatalogImport,
			},
			{
				Name:  "list",
				Usage: "List cached catalog items in import order",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "Only items imported from this source (file, remote)",
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Only items of this kind (movie, series)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogList,
			},
		},
	}
}

// historyCommand records and lists viewing history
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Record and list viewing history",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Record that a user watched a catalog item",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "item",
						Usage:    "Catalog item ID",
						Required: true,
					},
					userFlag(),
					atFlag("When the item was watched"),
				},
				Action: r.HistoryAdd,
			},
			{
				Name:  "list",
				Usage: "List a user's viewing history",
				Flags: []cli.Flag{
					userFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Only the most recent N events",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}

	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a configuration file from the built-in template",
				Flags:  []cli.Flag{configFlag},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Flags:  []cli.Flag{configFlag},
				Action: r.SetupRollback,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing playlists.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing mood playlists",
		Flags:   []cli.Flag{catalogFlag(), userFlag()},
		Action:  r.TUI,
	}
}
