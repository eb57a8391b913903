package cli

import (
	"context"

	"github.com/urfave/cli/v2"
	"go.skia.org/minicalc/minicalc/go/display"
)

// tokensCmd holds the flag values for the `tokens` subcommand, which prints
// the tokens of each program.
type tokensCmd struct {
	commonCmd
}

// TokensCommand returns a [*cli.Command] that prints token lists.
func TokensCommand() *cli.Command {
	cmd := &tokensCmd{}
	return &cli.Command{
		Name:        "tokens",
		Description: "tokens lexes each program and prints one row per token.",
		Usage:       "minicalc tokens [flags] <file>...",
		Flags:       cmd.flags(),
		Action:      cmd.action,
	}
}

func (cmd *tokensCmd) action(cliCtx *cli.Context) error {
	if err := cmd.setup(cliCtx); err != nil {
		return err
	}
	return cmd.forEachSource(cliCtx.Context, cliCtx.Args().Slice(), func(_ context.Context, _, src string) error {
		tokens, err := cmd.interp.Tokens(src)
		if err != nil {
			return err
		}
		display.WriteTokens(cmd.stdout, tokens)
		return nil
	})
}
