package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"x"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task between open and completed" }
func (c *ToggleCmd) Usage() string     { return "todo toggle <id>..." }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ids, err := ParseTaskIDs(args)
	if err != nil {
		if errors.Is(err, ErrTaskIDRequired) {
			fmt.Fprintln(errOut, "error: task id required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	// Unknown ids are not an error: the task may have been purged since it was listed.
	for _, id := range ids {
		if _, ok := svc.Find(id); !ok {
			if !cfg.Quiet {
				fmt.Fprintf(out, "no task with id %d\n", id)
			}
			continue
		}
		svc.Toggle(id)
		if !cfg.Quiet {
			t, _ := svc.Find(id)
			fmt.Fprintf(out, "%d %s\n", id, state(t.Completed()))
		}
	}
	return exitcode.Success
}

func state(completed bool) string {
	if completed {
		return "completed"
	}
	return "open"
}
