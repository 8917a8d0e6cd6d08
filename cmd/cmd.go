// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// listCommand prints tasks from the service.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "Show all, active, or completed tasks",
				Value:   "all",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Write tasks to a CSV file at the given path instead of printing",
			},
		},
		Action: r.List,
	}
}

// addCommand creates a task.
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "add",
		Aliases: []string{"a"},
		Usage:   "Add a task",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "title",
				Max:  1,
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the created task as JSON",
			},
		},
		Action: r.Add,
	}
}

// showCommand fetches a single task by id.
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show a single task",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
				Max:  1,
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the task as JSON",
			},
		},
		Action: r.Show,
	}
}

// doneCommand flips a task's completion state.
func doneCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "done",
		Aliases: []string{"do"},
		Usage:   "Mark a task completed",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
				Max:  1,
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "undo",
				Usage: "Mark the task active again",
			},
		},
		Action: r.Done,
	}
}

// rmCommand deletes a task.
func rmCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "rm",
		Aliases: []string{"delete"},
		Usage:   "Delete a task",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
				Max:  1,
			},
		},
		Action: r.Remove,
	}
}

// clearCommand deletes every completed task.
func clearCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete all completed tasks",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent delete workers",
				Value: 4,
			},
			&cli.IntFlag{
				Name:  "rate",
				Usage: "Maximum deletes per second",
				Value: 10,
			},
		},
		Action: r.Clear,
	}
}

// serveCommand runs the bundled task service.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the task service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Serve from an in-memory store that vanishes on exit",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive task management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive task manager",
		Action:  r.TUI,
	}
}

// setupCommand prepares configuration and local storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file, initialize the database, and check the service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
