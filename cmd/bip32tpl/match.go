package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	bip32template "github.com/dgpv/bip32template-go"
	"github.com/dgpv/bip32template-go/template"
	"github.com/dgpv/bip32template-go/tplset"
)

func match(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Match.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: match requires a path argument", cli.ErrUsage)
	}
	if cfg.SetFile == "" && len(args) == 1 {
		return fmt.Errorf("%w: nothing to match against, give templates or -t", cli.ErrUsage)
	}
	path, err := bip32template.ParsePath(args[0])
	if err != nil {
		printDiag(cc.Out, cfg.colorize(cc.Out), args[0], err)
		return fmt.Errorf("invalid path %q: %w", args[0], err)
	}
	pOpts, err := cfg.parseOpts()
	if err != nil {
		return err
	}
	var names []string
	if cfg.SetFile != "" {
		set, err := loadSet(cfg.SetFile, cc, pOpts)
		if err != nil {
			return err
		}
		names = set.Match(path)
	}
	for _, arg := range args[1:] {
		tpl, err := template.Parse(arg, pOpts...)
		if err != nil {
			printDiag(cc.Out, cfg.colorize(cc.Out), arg, err)
			return fmt.Errorf("invalid template %q: %w", arg, err)
		}
		if tpl.Match(path) {
			names = append(names, tpl.String())
		}
	}
	if !cfg.Quiet {
		for _, n := range names {
			fmt.Fprintln(cc.Out, n)
		}
	}
	if len(names) == 0 {
		return errors.New("no match")
	}
	return nil
}

func loadSet(file string, cc *cli.Context, opts []template.Option) (*tplset.Set, error) {
	var r io.Reader
	if file == "-" {
		r = cc.In
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	set, err := tplset.Load(r, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", file, err)
	}
	return set, nil
}
