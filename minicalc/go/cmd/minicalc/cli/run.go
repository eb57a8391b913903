package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"go.skia.org/minicalc/go/skerr"
	"go.skia.org/minicalc/go/sklog"
	"go.skia.org/minicalc/go/util"
	"go.skia.org/minicalc/minicalc/go/display"
)

// flag names
const (
	statementsFlagName = "statements"
	outputFlagName     = "output"
)

// runCmd holds the flag values for the `run` subcommand, which evaluates
// programs and prints the final store of each.
type runCmd struct {
	commonCmd
	statements bool
	output     string
}

// RunCommand returns a [*cli.Command] that evaluates minicalc programs.
func RunCommand() *cli.Command {
	cmd := &runCmd{}
	return &cli.Command{
		Name:        "run",
		Description: "run evaluates each program and prints its variables.",
		Usage:       "minicalc run [flags] <file>... | minicalc run -e '<program>'",
		Flags:       cmd.flags(),
		Action:      cmd.action,
	}
}

func (cmd *runCmd) flags() []cli.Flag {
	fl := []cli.Flag{
		&cli.BoolFlag{
			Name:        statementsFlagName,
			Usage:       "also print the value of every statement",
			Destination: &cmd.statements,
		}, &cli.StringFlag{
			Name:        outputFlagName,
			Usage:       "also write the results to this file",
			Destination: &cmd.output,
		},
	}
	return append(fl, cmd.commonCmd.flags()...)
}

func (cmd *runCmd) action(cliCtx *cli.Context) error {
	if err := cmd.setup(cliCtx); err != nil {
		return err
	}
	format, err := display.ParseFormat(cmd.cfg.Format)
	if err != nil {
		return err
	}
	args := cliCtx.Args().Slice()
	if cmd.output == "" {
		return cmd.runAll(cliCtx.Context, args, cmd.stdout, format)
	}
	var runErr error
	err = util.WithWriteFile(cmd.output, func(w io.Writer) error {
		runErr = cmd.runAll(cliCtx.Context, args, util.MultiWriter{cmd.stdout, w}, format)
		return nil
	})
	if err != nil {
		return skerr.Wrapf(err, "writing %s", cmd.output)
	}
	return runErr
}

func (cmd *runCmd) runAll(ctx context.Context, args []string, out io.Writer, format display.Format) error {
	multiple := len(args) > 1 || (len(args) == 1 && cmd.expr != "")
	return cmd.forEachSource(ctx, args, func(ctx context.Context, name, src string) error {
		res, err := cmd.interp.Run(ctx, src)
		if err != nil {
			return err
		}
		sklog.Infof("%s: %d statements, %d variables", name, len(res.Values), res.Store.Len())
		if multiple {
			if _, err := fmt.Fprintf(out, "== %s ==\n", name); err != nil {
				return skerr.Wrap(err)
			}
		}
		if cmd.statements {
			if err := display.WriteValues(out, res.Values); err != nil {
				return err
			}
		}
		return display.WriteStore(out, format, res.Store)
	})
}
