package parse

import (
	"fmt"
	"math"
	"strconv"

	"github.com/signadot/tony-format/upd/ir"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

func parseYAML(d []byte) ([]*ir.Document, error) {
	f, err := parser.ParseBytes(d, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	var res []*ir.Document
	for _, yd := range f.Docs {
		b := newBuilder()
		b.anchors = map[string]ast.Node{}
		switch body := yd.Body.(type) {
		case nil:
		case *ast.MappingNode:
			if err := b.yamlMapping(b.doc.Root(), body.Values); err != nil {
				return nil, err
			}
		case *ast.MappingValueNode:
			if err := b.yamlMapping(b.doc.Root(), []*ast.MappingValueNode{body}); err != nil {
				return nil, err
			}
		default:
			return nil, ErrNotObject
		}
		res = append(res, b.doc)
	}
	return res, nil
}

func (b *builder) yamlMapping(obj ir.Element, values []*ast.MappingValueNode) error {
	for _, mv := range values {
		name, err := yamlKey(mv.Key)
		if err != nil {
			return err
		}
		if err := b.yaml(obj, name, mv.Value, ""); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func yamlKey(k ast.MapKeyNode) (string, error) {
	var node any = k
	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value, nil
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			return strconv.FormatInt(v, 10), nil
		case uint64:
			return strconv.FormatUint(v, 10), nil
		}
	case *ast.FloatNode:
		return n.GetToken().Value, nil
	case *ast.BoolNode:
		return n.GetToken().Value, nil
	case *ast.NullNode:
		return n.GetToken().Value, nil
	case *ast.TagNode:
		return "", ErrKeyTag
	}
	return "", fmt.Errorf("%w: unsupported key %T", ErrParse, k)
}

func (b *builder) yaml(parent ir.Element, name string, n ast.Node, tag string) error {
	switch n := n.(type) {
	case nil:
		return b.yamlScalar(parent, name, ir.Null(), tag)
	case *ast.TagNode:
		if tag != "" {
			return fmt.Errorf("%w: %s follows %s", ErrParse, n.Start.Value, tag)
		}
		return b.yaml(parent, name, n.Value, n.Start.Value)
	case *ast.AnchorNode:
		b.anchors[n.Name.String()] = n.Value
		return b.yaml(parent, name, n.Value, tag)
	case *ast.AliasNode:
		target, ok := b.anchors[n.Value.String()]
		if !ok {
			return fmt.Errorf("%w: unknown alias %s", ErrParse, n.Value)
		}
		return b.yaml(parent, name, target, tag)
	case *ast.MappingNode:
		if err := containerTag(tag, "!!map"); err != nil {
			return err
		}
		obj, err := b.add(parent, name, ir.EmptyObject())
		if err != nil {
			return err
		}
		return b.yamlMapping(obj, n.Values)
	case *ast.MappingValueNode:
		if err := containerTag(tag, "!!map"); err != nil {
			return err
		}
		obj, err := b.add(parent, name, ir.EmptyObject())
		if err != nil {
			return err
		}
		return b.yamlMapping(obj, []*ast.MappingValueNode{n})
	case *ast.SequenceNode:
		if err := containerTag(tag, "!!seq"); err != nil {
			return err
		}
		arr, err := b.add(parent, name, ir.EmptyArray())
		if err != nil {
			return err
		}
		for i, item := range n.Values {
			if err := b.yaml(arr, "", item, ""); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	}
	v, err := yamlValue(n)
	if err != nil {
		return err
	}
	return b.yamlScalar(parent, name, v, tag)
}

func containerTag(tag, want string) error {
	if tag == "" || tag == want {
		return nil
	}
	return fmt.Errorf("%w %s on a container", ErrUnknownTag, tag)
}

func yamlValue(n ast.Node) (ir.Value, error) {
	switch n := n.(type) {
	case *ast.NullNode:
		return ir.Null(), nil
	case *ast.BoolNode:
		return ir.FromBool(n.Value), nil
	case *ast.StringNode:
		return ir.FromString(n.Value), nil
	case *ast.LiteralNode:
		return ir.FromString(n.Value.Value), nil
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			return ir.FromInt(v), nil
		case uint64:
			if v > math.MaxInt64 {
				return ir.FromFloat(float64(v)), nil
			}
			return ir.FromInt(int64(v)), nil
		}
		return ir.Value{}, fmt.Errorf("%w: unexpected integer node value type: %T", errInternal, n.Value)
	case *ast.FloatNode:
		return ir.FromFloat(n.Value), nil
	case *ast.InfinityNode:
		return ir.FromFloat(n.Value), nil
	case *ast.NanNode:
		return ir.FromFloat(math.NaN()), nil
	}
	return ir.Value{}, fmt.Errorf("%w: unsupported node %T", ErrParse, n)
}

// yamlScalar applies tag to v and adds the result.
func (b *builder) yamlScalar(parent ir.Element, name string, v ir.Value, tag string) error {
	var err error
	switch tag {
	case "", "!!null", "!!bool", "!!int", "!!float":
		if tag == "!!float" && v.IsNumber() {
			v = ir.FromFloat(v.Float())
		}
	case "!!str":
		v = ir.FromString(v.Text())
	case "!int", "!int32":
		v, err = int32Value(v.Text())
	case "!long", "!int64":
		v, err = int64Value(v.Text())
	case "!double":
		if v.IsNumber() {
			v = ir.FromFloat(v.Float())
		} else {
			v, err = doubleValue(v.Text())
		}
	case "!date":
		if v.Type != ir.StringType {
			return fmt.Errorf("%w: !date needs a string, got %s", ErrParse, v.Type)
		}
		v, err = dateValue(v.Str)
	default:
		return fmt.Errorf("%w %s", ErrUnknownTag, tag)
	}
	if err != nil {
		return err
	}
	_, err = b.add(parent, name, v)
	return err
}
