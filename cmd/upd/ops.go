package main

import (
	"fmt"

	"github.com/signadot/tony-format/upd/modifier"

	"github.com/scott-cotton/cli"
)

func ops(cfg *OpsConfig, cc *cli.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: ops takes no arguments", cli.ErrUsage)
	}
	for _, sym := range modifier.Symbols() {
		if _, err := fmt.Fprintln(cc.Out, sym); err != nil {
			return err
		}
	}
	return nil
}
