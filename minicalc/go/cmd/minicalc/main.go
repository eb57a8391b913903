// minicalc evaluates programs written in a tiny language of integer
// variables, arithmetic, comparisons and assignment.
package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"go.skia.org/minicalc/go/sklog"
	minicli "go.skia.org/minicalc/minicalc/go/cmd/minicalc/cli"
)

func main() {
	app := &cli.App{
		Name:        "minicalc",
		Description: "minicalc lexes, parses and evaluates minicalc programs.",
		Commands: []*cli.Command{
			minicli.RunCommand(),
			minicli.ASTCommand(),
			minicli.TokensCommand(),
		},
	}
	err := app.Run(os.Args)
	sklog.Flush()
	if err != nil {
		sklog.Fatal(err)
	}
}
