// Package bip32template provides one-call helpers over the template
// subpackages for the common parse-and-use cases.
package bip32template

import (
	"github.com/dgpv/bip32template-go/template"
)

// Valid reports whether in parses as a derivation path template.
func Valid(in string, opts ...template.Option) bool {
	_, err := template.Parse(in, opts...)
	return err == nil
}

// Match parses tpl and reports whether it matches path.
func Match(tpl string, path []uint32, opts ...template.Option) (bool, error) {
	t, err := template.Parse(tpl, opts...)
	if err != nil {
		return false, err
	}
	return t.Match(path), nil
}

// Canonical parses in and re-renders it in canonical form.
func Canonical(in string, opts ...template.Option) (string, error) {
	t, err := template.Parse(in, opts...)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// ParsePath reads a concrete derivation path written in path form,
// such as m/0h/1/2, into its index values.
func ParsePath(in string, opts ...template.Option) ([]uint32, error) {
	t, err := template.Parse(in, append(opts, template.OnlyPath())...)
	if err != nil {
		return nil, err
	}
	path, _ := t.ToPath()
	return path, nil
}
