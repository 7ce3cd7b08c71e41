// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/comeback/internal/formatter"
	"github.com/desertthunder/comeback/internal/tasks"
	"github.com/urfave/cli/v3"
)

func dayFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "day",
		Aliases: []string{"d"},
		Usage:   "Day to update as YYYY-MM-DD (default: today)",
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

func withJSON(flags ...cli.Flag) []cli.Flag {
	return append(flags, jsonFlags()...)
}

// setupCommand handles setup operations for the configuration file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:   "migrations",
				Usage:  "List migrations and whether they have been applied",
				Action: r.SetupMigrations,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// todayCommand shows the tracker for one day.
func todayCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "today",
		Aliases: []string{"day"},
		Usage:   "Show mood, water, meals and routine for a day",
		Flags:   withJSON(dayFlag()),
		Action:  r.Today,
	}
}

// moodCommand handles the mood meter.
func moodCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "mood",
		Usage: "Mood meter",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Set the mood for a day",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "mood"},
				},
				Flags:  []cli.Flag{dayFlag()},
				Action: r.MoodSet,
			},
			{
				Name:   "list",
				Usage:  "List moods with their synth frequency and playlist",
				Flags:  jsonFlags(),
				Action: r.MoodList,
			},
		},
	}
}

// waterCommand handles the water counter.
func waterCommand(r *Runner) *cli.Command {
	count := &cli.IntFlag{
		Name:    "glasses",
		Aliases: []string{"n"},
		Usage:   "Number of glasses",
		Value:   1,
	}
	return &cli.Command{
		Name:  "water",
		Usage: "Water counter",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add glasses of water",
				Flags:  []cli.Flag{dayFlag(), count},
				Action: r.WaterAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove glasses of water",
				Flags:   []cli.Flag{dayFlag(), count},
				Action:  r.WaterRemove,
			},
		},
	}
}

// mealCommand toggles a meal.
func mealCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "meal",
		Usage: "Toggle a meal (Breakfast, Lunch, Dinner)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "item"},
		},
		Flags:  []cli.Flag{dayFlag()},
		Action: r.MealToggle,
	}
}

// routineCommand toggles a routine item.
func routineCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "routine",
		Usage: "Toggle a routine item",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "item"},
		},
		Flags:  []cli.Flag{dayFlag()},
		Action: r.RoutineToggle,
	}
}

func daysFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "days",
		Usage: "Number of days to include, ending today",
		Value: tasks.DefaultWindow,
	}
}

// statsCommand prints the completion report.
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "stats",
		Aliases: []string{"analytics"},
		Usage:   "Show completion for the last days and the average",
		Flags:   withJSON(daysFlag()),
		Action:  r.Stats,
	}
}

// exportCommand writes the completion report to a file.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the completion report",
		Flags: []cli.Flag{
			daysFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown or txt",
				Value:   formatter.FormatCSV,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: comeback_{from}_{to}.{ext})",
			},
		},
		Action: r.Export,
	}
}

// calmCommand runs the breathing timer.
func calmCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "calm",
		Usage: "60 second calm breathing session",
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Run a breathing session in the terminal",
				Action: r.CalmStart,
			},
			{
				Name:  "history",
				Usage: "List recent breathing sessions",
				Flags: withJSON(&cli.IntFlag{
					Name:  "limit",
					Usage: "Maximum number of sessions to list",
					Value: 10,
				}),
				Action: r.CalmHistory,
			},
		},
	}
}

// synthCommand plays the ambient synth.
func synthCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "synth",
		Aliases: []string{"music"},
		Usage:   "Ambient mood synth",
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "Play the ambient voice for a mood until interrupted",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "mood"},
				},
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:  "volume",
						Usage: "Volume from 0 to 0.2 (default: saved volume)",
						Value: -1,
					},
					&cli.DurationFlag{
						Name:  "duration",
						Usage: "Stop after this long (0 plays until interrupted)",
					},
				},
				Action: r.SynthPlay,
			},
			{
				Name:  "volume",
				Usage: "Save the synth volume",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "volume"},
				},
				Action: r.SynthVolume,
			},
		},
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the tracker, calm timer and synth over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default: server.host:server.port from config)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for the interactive dashboard.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive dashboard",
		Action:  r.TUI,
	}
}
