package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/dgpv/bip32template-go/template"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='color diagnostics'"`

	OnlyPath    bool `cli:"name=only-path desc='restrict to concrete paths: no wildcards, lists or ranges'"`
	Unambiguous bool `cli:"name=unambiguous desc='reject templates that have a shorter equivalent spelling'"`
	Partial     bool `cli:"name=partial desc='forbid the m/ root prefix'"`
	Full        bool `cli:"name=full desc='require the m/ root prefix'"`

	Main *cli.Command
}

func (cfg *MainConfig) parseOpts() ([]template.Option, error) {
	if cfg.Partial && cfg.Full {
		return nil, fmt.Errorf("%w: only one of -partial, -full may be specified", cli.ErrUsage)
	}
	var opts []template.Option
	if cfg.OnlyPath {
		opts = append(opts, template.OnlyPath())
	}
	if cfg.Unambiguous {
		opts = append(opts, template.Unambiguous())
	}
	if cfg.Partial {
		opts = append(opts, template.Partial())
	}
	if cfg.Full {
		opts = append(opts, template.Full())
	}
	return opts, nil
}

// colorize reports whether output to w should be colored: the
// -color flag when given, TTY detection otherwise.
func (cfg *MainConfig) colorize(w io.Writer) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return (*opt.Value).(bool)
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type CheckConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q desc='no diagnostics, only the exit status'"`

	Check *cli.Command
}

type FmtConfig struct {
	*MainConfig

	Diff   bool `cli:"name=d desc='show a diff when the input is not canonical'"`
	Strip  bool `cli:"name=p desc='render without the m/ root prefix'"`
	Marker string

	Fmt *cli.Command
}

func (cfg *FmtConfig) markerOpt(cc *cli.Context, a string) (any, error) {
	cfg.Marker = a
	return nil, nil
}

type MatchConfig struct {
	*MainConfig

	Quiet   bool `cli:"name=q desc='no output, only the exit status'"`
	SetFile string

	Match *cli.Command
}

func (cfg *MatchConfig) setFileOpt(cc *cli.Context, a string) (any, error) {
	cfg.SetFile = a
	return nil, nil
}

type PathConfig struct {
	*MainConfig

	From   bool `cli:"name=f desc='build a template from a path of raw index values'"`
	Marker string

	Path *cli.Command
}

func (cfg *PathConfig) markerOpt(cc *cli.Context, a string) (any, error) {
	cfg.Marker = a
	return nil, nil
}
