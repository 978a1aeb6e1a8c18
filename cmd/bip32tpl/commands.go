package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "bip32tpl").
		WithSynopsis("bip32tpl [opts] command [opts]").
		WithDescription("bip32tpl is a tool for working with BIP32 derivation path templates.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tplMain(cfg, cc, args)
		}).
		WithSubs(
			CheckCommand(cfg),
			FmtCommand(cfg),
			MatchCommand(cfg),
			PathCommand(cfg))
}

func tplMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [opts] [templates]").
		WithDescription("validate template strings from arguments or stdin lines").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "m",
		Aliases:     []string{"marker"},
		Description: "render hardened indexes with this marker",
		Type:        cli.NamedFuncOpt(cfg.markerOpt, "(marker)"),
	})
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [opts] [templates]").
		WithDescription("rewrite templates in canonical form").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return format(cfg, cc, args)
		})
}

func MatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "t",
		Aliases:     []string{"templates"},
		Description: "match against a YAML template set file ('-' for stdin)",
		Type:        cli.NamedFuncOpt(cfg.setFileOpt, "(file)"),
	})
	return cli.NewCommandAt(&cfg.Match, "match").
		WithAliases("m").
		WithSynopsis("match [opts] <path> [templates]").
		WithDescription("match a derivation path against templates").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return match(cfg, cc, args)
		})
}

func PathCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PathConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "m",
		Aliases:     []string{"marker"},
		Description: "hardened marker for the built template",
		Type:        cli.NamedFuncOpt(cfg.markerOpt, "(marker)"),
	})
	return cli.NewCommandAt(&cfg.Path, "path").
		WithAliases("p").
		WithSynopsis("path [opts] <template> | path -f [opts] <indexes>").
		WithDescription("convert between templates and concrete index paths").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return path(cfg, cc, args)
		})
}
