package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dgpv/bip32template-go/template"
)

// printDiag echoes the rejected input with a caret under the
// offending position and the error message below it.
func printDiag(w io.Writer, colorize bool, in string, err error) {
	fmt.Fprintln(w, in)
	var pe *template.ParseError
	if errors.As(err, &pe) && pe.Pos <= len(in) {
		caret := strings.Repeat(" ", pe.Pos) + "^"
		if colorize {
			caret = color.RedString("%s", caret)
		}
		fmt.Fprintln(w, caret)
	}
	msg := err.Error()
	if colorize {
		msg = color.RedString("%s", msg)
	}
	fmt.Fprintln(w, msg)
}

func printTextDiff(w io.Writer, colorize bool, from, to string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	if colorize {
		fmt.Fprintln(w, dmp.DiffPrettyText(diffs))
		return
	}
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("[+" + d.Text + "+]")
		default:
			b.WriteString(d.Text)
		}
	}
	fmt.Fprintln(w, b.String())
}

// readLines collects non-empty input lines, one template per line.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading: %w", err)
	}
	return lines, nil
}
