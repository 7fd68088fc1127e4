package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&ResetCmd{})
}

// ResetCmd implements the reset command.
type ResetCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *ResetCmd) SetForce(force bool) {
	c.force = force
}

func (c *ResetCmd) Name() string      { return "reset" }
func (c *ResetCmd) Aliases() []string { return nil }
func (c *ResetCmd) Synopsis() string  { return "Remove all tasks" }
func (c *ResetCmd) Usage() string     { return "todo reset [--force]" }
func (c *ResetCmd) NeedsStore() bool  { return true }

func (c *ResetCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *ResetCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// Open tasks are only dropped with --force
	counts := svc.Counts()
	if counts.Remaining() > 0 && !c.force {
		fmt.Fprintln(errOut, "error: list not empty (use --force)")
		return exitcode.UserError
	}

	svc.Clear()

	if !cfg.Quiet {
		fmt.Fprintf(out, "removed %d\n", counts.Total)
	}
	return exitcode.Success
}
