package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"j":     JSONFormat,
		"json":  JSONFormat,
		"y":     YAMLFormat,
		"yaml":  YAMLFormat,
		"yml":   YAMLFormat,
		"jsonl": JSONFormat,
	} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: got %s want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestTextRoundTrip(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("yaml")); err != nil {
		t.Fatal(err)
	}
	d, err := f.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "yaml" || f.Suffix() != ".yaml" {
		t.Errorf("got %q %q", d, f.Suffix())
	}
}

func TestInvalidFormat(t *testing.T) {
	f := Format(7)
	if _, err := f.MarshalText(); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
	if f.String() != "Format(7)" || f.Suffix() != "" {
		t.Errorf("got %q %q", f.String(), f.Suffix())
	}
}
