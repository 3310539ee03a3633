package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/signadot/tony-format/upd/ir"

	"github.com/goccy/go-yaml/ast"
)

// Parse reads a single document. The top level value must be an object.
// The returned document is InPlaceEligible.
func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	docs, err := ParseAll(d, opts...)
	if err != nil {
		return nil, err
	}
	switch len(docs) {
	case 0:
		return ir.New(), nil
	case 1:
		return docs[0], nil
	default:
		return nil, fmt.Errorf("%w: expected one document, got %d", ErrParse, len(docs))
	}
}

// ParseAll reads every document in d. JSON input holds exactly one
// document; YAML input may hold several separated by "---".
func ParseAll(d []byte, opts ...ParseOption) ([]*ir.Document, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	var (
		docs []*ir.Document
		err  error
	)
	if pOpts.format.IsYAML() {
		docs, err = parseYAML(d)
	} else {
		var doc *ir.Document
		doc, err = parseJSON(d)
		docs = []*ir.Document{doc}
	}
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i] = docs[i].Clone()
	}
	return docs, nil
}

// builder adds children to a document, rejecting duplicate object keys.
type builder struct {
	doc     *ir.Document
	keys    map[ir.Handle]map[string]struct{}
	anchors map[string]ast.Node
}

func newBuilder() *builder {
	return &builder{doc: ir.New(), keys: map[ir.Handle]map[string]struct{}{}}
}

func (b *builder) add(parent ir.Element, name string, v ir.Value) (ir.Element, error) {
	if parent.Type() == ir.ObjectType {
		seen := b.keys[parent.Handle()]
		if seen == nil {
			seen = map[string]struct{}{}
			b.keys[parent.Handle()] = seen
		}
		if _, dup := seen[name]; dup {
			return ir.Element{}, fmt.Errorf("%w %q", ErrDuplicateKey, name)
		}
		seen[name] = struct{}{}
	}
	return b.doc.PushBack(parent, name, v)
}

// number converts integer or decimal text to the narrowest fitting type.
func number(raw string) (ir.Value, error) {
	if !strings.ContainsAny(raw, ".eE") {
		i, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return ir.FromInt(i), nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ir.Value{}, fmt.Errorf("%w: bad number %q", ErrParse, raw)
	}
	return ir.FromFloat(f), nil
}

func int32Value(raw string) (ir.Value, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return ir.Value{}, fmt.Errorf("%w: %q as int32", ErrRange, raw)
	}
	return ir.FromInt32(int32(i)), nil
}

func int64Value(raw string) (ir.Value, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return ir.Value{}, fmt.Errorf("%w: %q as int64", ErrRange, raw)
	}
	return ir.FromInt64(i), nil
}

func doubleValue(raw string) (ir.Value, error) {
	switch s := strings.TrimSpace(raw); s {
	case "NaN", ".nan", ".NaN":
		return ir.FromFloat(math.NaN()), nil
	case "Infinity", "+Infinity", ".inf", "+.inf":
		return ir.FromFloat(math.Inf(1)), nil
	case "-Infinity", "-.inf":
		return ir.FromFloat(math.Inf(-1)), nil
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ir.Value{}, fmt.Errorf("%w: %q as double", ErrParse, raw)
		}
		return ir.FromFloat(f), nil
	}
}

func dateValue(raw string) (ir.Value, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return ir.Value{}, fmt.Errorf("%w: %q as date: %w", ErrParse, raw, err)
	}
	return ir.FromTime(t), nil
}
