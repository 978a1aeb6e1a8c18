package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/dgpv/bip32template-go/template"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	pOpts, err := cfg.parseOpts()
	if err != nil {
		return err
	}
	ins := args
	if len(ins) == 0 {
		ins, err = readLines(cc.In)
		if err != nil {
			return err
		}
	}
	bad := 0
	for _, in := range ins {
		if _, err := template.Parse(in, pOpts...); err != nil {
			bad++
			if !cfg.Quiet {
				printDiag(cc.Out, cfg.colorize(cc.Out), in, err)
			}
		}
	}
	if bad > 0 {
		return fmt.Errorf("invalid templates: %d of %d", bad, len(ins))
	}
	return nil
}
