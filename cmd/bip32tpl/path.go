package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/dgpv/bip32template-go/template"
)

func path(cfg *PathConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Path.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: path requires exactly one argument", cli.ErrUsage)
	}
	if cfg.From {
		return fromPath(cfg, cc, args[0])
	}
	pOpts, err := cfg.parseOpts()
	if err != nil {
		return err
	}
	tpl, err := template.Parse(args[0], pOpts...)
	if err != nil {
		printDiag(cc.Out, cfg.colorize(cc.Out), args[0], err)
		return fmt.Errorf("invalid template %q: %w", args[0], err)
	}
	p, ok := tpl.ToPath()
	if !ok {
		return errors.New("template does not denote a single path")
	}
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}
	fmt.Fprintln(cc.Out, strings.Join(parts, "/"))
	return nil
}

// fromPath builds a template from raw index values, e.g.
// 2147483648/1/2; indexes at or above 2^31 come out hardened.
func fromPath(cfg *PathConfig, cc *cli.Context, arg string) error {
	parts := strings.Split(arg, "/")
	p := make([]uint32, len(parts))
	for i, s := range parts {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("bad index %q: %w", s, err)
		}
		p[i] = uint32(v)
	}
	tpl, err := template.FromPath(p, cfg.Partial, cfg.Marker)
	if err != nil {
		return err
	}
	fmt.Fprintln(cc.Out, tpl)
	return nil
}
