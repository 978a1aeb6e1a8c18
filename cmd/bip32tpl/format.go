package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/dgpv/bip32template-go/template"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
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
	for _, in := range ins {
		tpl, err := template.Parse(in, pOpts...)
		if err != nil {
			printDiag(cc.Out, cfg.colorize(cc.Out), in, err)
			return fmt.Errorf("invalid template %q: %w", in, err)
		}
		if cfg.Marker != "" {
			tpl, err = tpl.WithHardenedMarker(cfg.Marker)
			if err != nil {
				return fmt.Errorf("%w: -m %q: %v", cli.ErrUsage, cfg.Marker, err)
			}
		}
		if cfg.Strip {
			tpl = tpl.WithPartial(true)
		}
		out := tpl.String()
		fmt.Fprintln(cc.Out, out)
		if cfg.Diff && out != in {
			printTextDiff(cc.Out, cfg.colorize(cc.Out), in, out)
		}
	}
	return nil
}
