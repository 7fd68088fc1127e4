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
	Register(&PurgeCmd{})
}

// PurgeCmd implements the purge command.
type PurgeCmd struct{}

func (c *PurgeCmd) Name() string      { return "purge" }
func (c *PurgeCmd) Aliases() []string { return []string{"clear"} }
func (c *PurgeCmd) Synopsis() string  { return "Remove completed tasks" }
func (c *PurgeCmd) Usage() string     { return "todo purge" }
func (c *PurgeCmd) NeedsStore() bool  { return true }

func (c *PurgeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PurgeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	before := svc.Counts()
	remaining := svc.PurgeCompleted()

	if !cfg.Quiet {
		fmt.Fprintf(out, "removed %d\n", before.Total-len(remaining))
	}
	return exitcode.Success
}
