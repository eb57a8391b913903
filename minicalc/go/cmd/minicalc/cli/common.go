// Package cli implements the subcommands of the minicalc binary.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
	"go.skia.org/minicalc/go/metrics2"
	"go.skia.org/minicalc/go/skerr"
	"go.skia.org/minicalc/go/sklog"
	"go.skia.org/minicalc/go/urfavecli"
	"go.skia.org/minicalc/minicalc/go/config"
	"go.skia.org/minicalc/minicalc/go/display"
	"go.skia.org/minicalc/minicalc/go/interp"
	"go.skia.org/minicalc/minicalc/go/messages"
	"go.skia.org/minicalc/minicalc/go/source"
)

// flag names
const (
	configFlagName      = "config"
	localeFlagName      = "locale"
	formatFlagName      = "format"
	maxDepthFlagName    = "max_depth"
	colorFlagName       = "color"
	verboseFlagName     = "verbose"
	metricsFileFlagName = "metrics_file"
	exprFlagName        = "e"
)

// exprName is how an inline program is named in diagnostics.
const exprName = "<expr>"

// commonCmd holds the flags and state shared by every subcommand. Flags left
// at their zero value do not override the config file, except --color, which
// overrides it whenever it is given.
type commonCmd struct {
	configPath  string
	locale      string
	format      string
	maxDepth    int
	color       bool
	verbose     bool
	metricsFile string
	expr        string

	// stdout and stderr default to os.Stdout and os.Stderr.
	stdout io.Writer
	stderr io.Writer

	cfg         config.Config
	interp      *interp.Interpreter
	diagnostics *display.Diagnostics
}

func (cmd *commonCmd) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        configFlagName,
			Usage:       "JSON5 config file",
			Destination: &cmd.configPath,
		}, &cli.StringFlag{
			Name:        localeFlagName,
			Usage:       "language of error messages, e.g. en or ja",
			Destination: &cmd.locale,
		}, &cli.StringFlag{
			Name:        formatFlagName,
			Usage:       "output format of the store: table, json or yaml",
			Destination: &cmd.format,
		}, &cli.IntFlag{
			Name:        maxDepthFlagName,
			Usage:       "deepest expression nesting accepted by the parser",
			Destination: &cmd.maxDepth,
		}, &cli.BoolFlag{
			Name:        colorFlagName,
			Usage:       "highlight the offending token in diagnostics",
			Destination: &cmd.color,
		}, &cli.BoolFlag{
			Name:        verboseFlagName,
			Usage:       "log every stage of the pipeline",
			Destination: &cmd.verbose,
		}, &cli.StringFlag{
			Name:        metricsFileFlagName,
			Usage:       "write run counters to this file in the Prometheus textfile format",
			Destination: &cmd.metricsFile,
		}, &cli.StringFlag{
			Name:        exprFlagName,
			Usage:       "program text to use instead of files",
			Destination: &cmd.expr,
		},
	}
}

// setup loads the config, applies the flag overrides and builds the
// interpreter.
func (cmd *commonCmd) setup(cliCtx *cli.Context) error {
	sklog.SetVerbose(cmd.verbose)
	if cmd.verbose {
		urfavecli.LogFlags(cliCtx)
	}
	if cmd.stdout == nil {
		cmd.stdout = os.Stdout
	}
	if cmd.stderr == nil {
		cmd.stderr = os.Stderr
	}

	cfg := config.Default()
	if cmd.configPath != "" {
		var err error
		cfg, err = config.Load(cmd.configPath)
		if err != nil {
			return err
		}
	}
	if cmd.locale != "" {
		cfg.Locale = cmd.locale
	}
	if cmd.format != "" {
		cfg.Format = cmd.format
	}
	if cmd.maxDepth != 0 {
		cfg.MaxDepth = cmd.maxDepth
	}
	if cmd.metricsFile != "" {
		cfg.MetricsFile = cmd.metricsFile
	}
	if cliCtx.IsSet(colorFlagName) {
		cfg.Color = cmd.color
	}
	if err := cfg.Validate(); err != nil {
		return skerr.Wrapf(err, "invalid settings")
	}
	cmd.cfg = cfg

	p, err := messages.NewPrinter(cfg.Locale)
	if err != nil {
		return err
	}
	cmd.diagnostics = display.NewDiagnostics(p, cfg.Color)
	cmd.interp = interp.New(interp.Options{
		MaxDepth: cfg.MaxDepth,
		Metrics:  metrics2.NewClient(),
	})
	sklog.Debugf("Settings: %+v", cfg)
	return nil
}

// forEachSource calls fn with the name and text of every input: the -e text
// if given, otherwise each file named on the command line ("-" is stdin).
// Failures are reported on stderr and do not stop the remaining inputs; all
// of them are returned together.
func (cmd *commonCmd) forEachSource(ctx context.Context, args []string, fn func(ctx context.Context, name, src string) error) error {
	if cmd.cfg.Deadline() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.cfg.Deadline())
		defer cancel()
	}

	type input struct {
		name string
		text string
	}
	var inputs []input
	if cmd.expr != "" {
		inputs = append(inputs, input{name: exprName, text: cmd.expr})
	}
	var errs *multierror.Error
	for _, name := range args {
		text, err := source.Read(name)
		if err != nil {
			cmd.report(name, err)
			errs = multierror.Append(errs, skerr.Wrapf(err, "%s", name))
			continue
		}
		inputs = append(inputs, input{name: name, text: text})
	}
	if len(inputs) == 0 && errs == nil {
		return skerr.Fmt("no input: name one or more files, - for stdin, or use -%s", exprFlagName)
	}

	for _, in := range inputs {
		if err := fn(ctx, in.name, in.text); err != nil {
			cmd.report(in.name, err)
			errs = multierror.Append(errs, skerr.Wrapf(err, "%s", in.name))
		}
	}
	if err := cmd.writeMetrics(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}

// report writes a diagnostic for err to stderr.
func (cmd *commonCmd) report(name string, err error) {
	if werr := cmd.diagnostics.Write(cmd.stderr, name, err); werr != nil {
		sklog.Errorf("Failed to report %s: %s", err, werr)
	}
}

func (cmd *commonCmd) writeMetrics() error {
	if cmd.cfg.MetricsFile == "" {
		return nil
	}
	if err := cmd.interp.Metrics().WriteToTextfile(cmd.cfg.MetricsFile); err != nil {
		return err
	}
	sklog.Infof("Wrote metrics to %s", cmd.cfg.MetricsFile)
	return nil
}
