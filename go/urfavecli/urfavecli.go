// Package urfavecli contains helpers for programs built on
// github.com/urfave/cli/v2.
package urfavecli

import (
	cli "github.com/urfave/cli/v2"
	"go.skia.org/minicalc/go/sklog"
)

// LogFlags logs the value of every flag of the running command, one per
// line.
func LogFlags(c *cli.Context) {
	if c.Command == nil {
		return
	}
	for _, f := range c.Command.Flags {
		names := f.Names()
		if len(names) == 0 {
			continue
		}
		sklog.Infof("Flags: --%s=%v", names[0], c.Value(names[0]))
	}
}
