package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.skia.org/minicalc/go/skerr"
)

// astCmd holds the flag values for the `ast` subcommand, which prints the
// syntax tree of each program without running it.
type astCmd struct {
	commonCmd
}

// ASTCommand returns a [*cli.Command] that prints syntax trees.
func ASTCommand() *cli.Command {
	cmd := &astCmd{}
	return &cli.Command{
		Name:        "ast",
		Description: "ast parses each program and prints its syntax tree.",
		Usage:       "minicalc ast [flags] <file>...",
		Flags:       cmd.flags(),
		Action:      cmd.action,
	}
}

func (cmd *astCmd) action(cliCtx *cli.Context) error {
	if err := cmd.setup(cliCtx); err != nil {
		return err
	}
	return cmd.forEachSource(cliCtx.Context, cliCtx.Args().Slice(), func(_ context.Context, name, src string) error {
		prog, err := cmd.interp.Parse(src)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cmd.stdout, "== %s ==\n", name); err != nil {
			return skerr.Wrap(err)
		}
		return skerr.Wrap(prog.Fprint(cmd.stdout))
	})
}
