package format

import (
	"errors"
	"fmt"
)

// Format selects how documents are read and written.
type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

var ErrBadFormat = errors.New("bad format")

type formatInfo struct {
	name    string
	suffix  string
	aliases []string
}

var formats = [...]formatInfo{
	JSONFormat: {name: "json", suffix: ".json", aliases: []string{"j", "jsonl"}},
	YAMLFormat: {name: "yaml", suffix: ".yaml", aliases: []string{"y", "yml"}},
}

func (f Format) valid() bool { return f >= 0 && int(f) < len(formats) }

// ParseFormat accepts a format name or one of its aliases.
func ParseFormat(v string) (Format, error) {
	for i := range formats {
		info := &formats[i]
		if v == info.name {
			return Format(i), nil
		}
		for _, a := range info.aliases {
			if v == a {
				return Format(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formats[f].name
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadFormat, int(f))
	}
	return []byte(formats[f].name), nil
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsYAML() bool { return f == YAMLFormat }

// Suffix returns the usual file extension for f.
func (f Format) Suffix() string {
	if !f.valid() {
		return ""
	}
	return formats[f].suffix
}
