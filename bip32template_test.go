package bip32template

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dgpv/bip32template-go/template"
)

func TestValid(t *testing.T) {
	if !Valid("m/0h/[1-9,23]/*") {
		t.Error("valid template rejected")
	}
	if Valid("m/[5]") {
		t.Error("invalid template accepted")
	}
	if Valid("m/*", template.OnlyPath()) {
		t.Error("wildcard accepted in only-path mode")
	}
}

func TestMatch(t *testing.T) {
	ok, err := Match("m/0h/[1-9,23]/*", []uint32{0x80000000, 5, 42})
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if !ok {
		t.Error("path did not match")
	}
	if _, err := Match("m/[5]", nil); err == nil {
		t.Error("invalid template produced no error")
	}
}

func TestCanonical(t *testing.T) {
	got, err := Canonical("m/[1,2]")
	if err != nil {
		t.Fatalf("Canonical: %v", err)
	}
	if want := "m/[1-2]"; got != want {
		t.Errorf("Canonical = %q, want %q", got, want)
	}
	var pe *template.ParseError
	if _, err := Canonical("m/[9-1]"); !errors.As(err, &pe) {
		t.Errorf("Canonical error %v is not a *ParseError", err)
	}
}

func TestParsePath(t *testing.T) {
	path, err := ParsePath("m/0h/1/2")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if d := cmp.Diff([]uint32{0x80000000, 1, 2}, path); d != "" {
		t.Errorf("ParsePath: (-want +got)\n%s", d)
	}
	if _, err := ParsePath("m/*"); err == nil {
		t.Error("ParsePath accepted a wildcard")
	}
}
