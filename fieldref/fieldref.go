package fieldref

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Positional is the placeholder segment standing for the array position
// matched by a query.
const Positional = "$"

type FieldRef struct {
	parts []string
}

// Parse parses a dot separated path. Segments must be non-empty.
func Parse(dotted string) (*FieldRef, error) {
	if dotted == "" {
		return nil, fmt.Errorf("%w: empty path", ErrMalformedPath)
	}
	parts := strings.Split(dotted, ".")
	for i, p := range parts {
		if p != "" {
			continue
		}
		switch i {
		case 0:
			return nil, fmt.Errorf("%w: %q has a leading '.'", ErrMalformedPath, dotted)
		case len(parts) - 1:
			return nil, fmt.Errorf("%w: %q has a trailing '.'", ErrMalformedPath, dotted)
		default:
			return nil, fmt.Errorf("%w: %q has an empty segment at %d", ErrMalformedPath, dotted, i)
		}
	}
	return &FieldRef{parts: parts}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(dotted string) *FieldRef {
	ref, err := Parse(dotted)
	if err != nil {
		panic(err)
	}
	return ref
}

// FromParts builds a FieldRef from already split segments.
func FromParts(parts ...string) (*FieldRef, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrMalformedPath)
	}
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: empty segment at %d", ErrMalformedPath, i)
		}
	}
	return &FieldRef{parts: slices.Clone(parts)}, nil
}

func (f *FieldRef) NumParts() int {
	return len(f.parts)
}

func (f *FieldRef) Part(i int) string {
	return f.parts[i]
}

// Dotted reconstructs the dotted form of the whole path.
func (f *FieldRef) Dotted() string {
	return strings.Join(f.parts, ".")
}

// DottedPrefix returns the dotted form of the first n segments.
func (f *FieldRef) DottedPrefix(n int) string {
	n = min(max(n, 0), len(f.parts))
	return strings.Join(f.parts[:n], ".")
}

func (f *FieldRef) String() string {
	return f.Dotted()
}

func (f *FieldRef) Equal(o *FieldRef) bool {
	if f == nil || o == nil {
		return f == o
	}
	return slices.Equal(f.parts, o.parts)
}

// IsPrefixOf reports whether every segment of f matches the leading
// segments of o.
func (f *FieldRef) IsPrefixOf(o *FieldRef) bool {
	if len(f.parts) > len(o.parts) {
		return false
	}
	return slices.Equal(f.parts, o.parts[:len(f.parts)])
}

// Positionals returns the indices of the positional placeholder segments.
func (f *FieldRef) Positionals() []int {
	var res []int
	for i, p := range f.parts {
		if p == Positional {
			res = append(res, i)
		}
	}
	return res
}

// WithPositional returns a copy of f with every positional placeholder
// replaced by matched. f itself is left unchanged.
func (f *FieldRef) WithPositional(matched string) *FieldRef {
	res := &FieldRef{parts: slices.Clone(f.parts)}
	for i, p := range res.parts {
		if p == Positional {
			res.parts[i] = matched
		}
	}
	return res
}

// Index reports whether part is usable as an array index.
func Index(part string) (int, bool) {
	if part == "" {
		return 0, false
	}
	for i := 0; i < len(part); i++ {
		if part[i] < '0' || part[i] > '9' {
			return 0, false
		}
	}
	// leading zeros name fields, not positions
	if len(part) > 1 && part[0] == '0' {
		return 0, false
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, false
	}
	return n, true
}
