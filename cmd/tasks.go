package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/tsk/internal/formatter"
	"github.com/desertthunder/tsk/internal/models"
	"github.com/desertthunder/tsk/internal/shared"
	"github.com/desertthunder/tsk/internal/tasks"
	"github.com/urfave/cli/v3"
)

// stringArg returns the parsed value of the named positional argument,
// mirroring the Command.StringArg accessor that urfave/cli/v3 gained after
// v3.0.0-beta1, the newest release whose go directive permits go1.21.
func stringArg(cmd *cli.Command, name string) string {
	for _, a := range cmd.Arguments {
		sa, ok := a.(*cli.StringArg)
		if !ok || sa.Name != name {
			continue
		}
		if sa.Values != nil && len(*sa.Values) > 0 {
			return (*sa.Values)[0]
		}
		return sa.Value
	}
	return ""
}

// parseID converts a positional id argument into a task id.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: task id must be a number, got %q", shared.ErrInvalidArgument, arg)
	}
	return id, nil
}

// List prints tasks, optionally filtered, as a table, JSON, or a CSV file.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	filter, err := tasks.ParseFilter(cmd.String("filter"))
	if err != nil {
		return err
	}

	r.logger.Info("listing tasks", "filter", filter.String())

	items, err := r.api.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	filtered := make([]models.Task, 0, len(items))
	for _, t := range items {
		if filter.Matches(t) {
			filtered = append(filtered, t)
		}
	}

	if path := cmd.String("csv"); path != "" {
		file, err := formatter.WriteCSVExport(filtered, path)
		if err != nil {
			return err
		}
		r.logger.Info("tasks exported", "file", file, "count", len(filtered))
		return r.writePlain("Wrote %d tasks to %s\n", len(filtered), file)
	}

	if cmd.Bool("json") {
		return r.writeJSON(filtered, cmd.Bool("pretty"))
	}

	table, err := formatter.Table(filtered)
	if err != nil {
		return err
	}
	return r.writePlain("%s", table)
}

// Add creates a task from the positional title argument.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	title := tasks.NormalizeTitle(stringArg(cmd, "title"))
	if title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrMissingArgument)
	}

	r.logger.Info("creating task", "title", title)

	task, err := r.api.CreateTask(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(task, true)
	}
	return r.writePlain("Created task %d: %s\n", task.ID, task.Title)
}

// Show fetches and prints a single task.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(stringArg(cmd, "id"))
	if err != nil {
		return err
	}

	task, err := r.api.GetTask(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch task %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(task, true)
	}

	state := "open"
	if task.Completed {
		state = "done"
	}
	return r.writePlain("%d  %s  %s\n", task.ID, state, task.Title)
}

// Done marks a task completed, or active again with --undo.
func (r *Runner) Done(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(stringArg(cmd, "id"))
	if err != nil {
		return err
	}

	completed := !cmd.Bool("undo")
	r.logger.Info("updating task", "id", id, "completed", completed)

	task, err := r.api.UpdateTask(ctx, id, models.CompletedPatch(completed))
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", id, err)
	}

	state := "active"
	if task.Completed {
		state = "completed"
	}
	return r.writePlain("Task %d marked %s: %s\n", task.ID, state, task.Title)
}

// Remove deletes a task by id.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(stringArg(cmd, "id"))
	if err != nil {
		return err
	}

	r.logger.Info("deleting task", "id", id)

	if err := r.api.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return r.writePlain("Deleted task %d\n", id)
}

// Clear deletes every completed task through the bounded worker pool and
// reports per-id failures without aborting the rest.
func (r *Runner) Clear(ctx context.Context, cmd *cli.Command) error {
	items, err := r.api.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	ids := make([]int64, 0, len(items))
	for _, t := range items {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		return r.writePlain("No completed tasks to clear\n")
	}

	r.logger.Info("clearing completed tasks", "count", len(ids))

	opts := tasks.ClearOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  float64(cmd.Int("rate")),
	}
	summary, err := tasks.ClearCompleted(ctx, r.api, ids, opts, nil)
	if err != nil {
		return err
	}

	for _, res := range summary.Results {
		if !res.Success {
			r.writePlain("Failed to clear task %d: %v\n", res.ID, res.Err)
		}
	}
	return r.writePlain("Cleared %d of %d completed tasks\n", summary.Cleared, summary.Total)
}
