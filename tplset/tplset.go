// Package tplset loads named collections of derivation path
// templates from YAML documents, for matching candidate paths
// against a whole policy at once.
package tplset

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/dgpv/bip32template-go/template"
)

// Entry is one named template in its textual form, as written in a
// set file:
//
//	templates:
//	  - name: cold-storage
//	    template: m/0h/[1-9,23]/*
type Entry struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
}

type file struct {
	Templates []Entry `yaml:"templates"`
}

// Named pairs a parsed template with its name from the set file.
type Named struct {
	Name     string
	Template *template.Template
}

// Set is an ordered collection of named templates.
type Set struct {
	named  []Named
	byName map[string]*template.Template
}

// Load reads a YAML template set, parsing every entry with opts.
// Any entry failing to parse rejects the whole set.
func Load(r io.Reader, opts ...template.Option) (*Set, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading template set: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(d, &f); err != nil {
		return nil, fmt.Errorf("error decoding template set: %w", err)
	}
	s := &Set{byName: make(map[string]*template.Template, len(f.Templates))}
	for i, e := range f.Templates {
		if e.Name == "" {
			return nil, fmt.Errorf("template %d has no name", i)
		}
		if _, ok := s.byName[e.Name]; ok {
			return nil, fmt.Errorf("duplicate template name %q", e.Name)
		}
		tpl, err := template.Parse(e.Template, opts...)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", e.Name, err)
		}
		s.named = append(s.named, Named{Name: e.Name, Template: tpl})
		s.byName[e.Name] = tpl
	}
	return s, nil
}

// Get returns the template named name, or nil.
func (s *Set) Get(name string) *template.Template {
	return s.byName[name]
}

// Names lists the template names in file order.
func (s *Set) Names() []string {
	names := make([]string, len(s.named))
	for i, n := range s.named {
		names[i] = n.Name
	}
	return names
}

// Templates lists the named templates in file order.
func (s *Set) Templates() []Named {
	return append([]Named(nil), s.named...)
}

// Match returns the names of the templates matching path, in file
// order.
func (s *Set) Match(path []uint32) []string {
	var names []string
	for _, n := range s.named {
		if n.Template.Match(path) {
			names = append(names, n.Name)
		}
	}
	return names
}
