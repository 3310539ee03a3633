package encode

import (
	"strings"

	"github.com/signadot/tony-format/upd/ir"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
	TagColor
)

type colorKey struct {
	typ  ir.Type
	attr ColorAttr
}

// Colors maps (type, attribute) pairs to color functions.  Numeric widths
// get distinct shades so promotions stand out in output.
type Colors struct {
	byKey map[colorKey]*color.Color
}

type rgb [3]int

var valuePalette = map[ir.Type]rgb{
	ir.NullType:   {168, 0, 196},
	ir.DateType:   {198, 198, 46},
	ir.StringType: {8, 196, 16},
	ir.Int32Type:  {128, 216, 236},
	ir.Int64Type:  {64, 160, 236},
	ir.DoubleType: {236, 176, 96},
}

func NewColors() *Colors {
	c := &Colors{byKey: map[colorKey]*color.Color{}}
	for _, t := range ir.Types() {
		c.byKey[colorKey{t, TagColor}] = color.RGB(74, 92, 138)
		c.byKey[colorKey{t, SepColor}] = color.RGB(255, 0, 196)
		if p, ok := valuePalette[t]; ok {
			c.byKey[colorKey{t, ValueColor}] = color.RGB(p[0], p[1], p[2])
		}
	}
	c.byKey[colorKey{ir.BoolType, ValueColor}] = color.New(color.FgCyan)
	c.byKey[colorKey{ir.ObjectType, FieldColor}] = color.RGB(128, 168, 196)
	c.byKey[colorKey{ir.ObjectType, SepColor}] = color.RGB(196, 128, 128)
	c.byKey[colorKey{ir.ArrayType, SepColor}] = color.RGB(196, 128, 128)
	return c
}

// Color renders s for type t and attribute a, or returns s unchanged when
// no color is assigned.
func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	col := c.byKey[colorKey{t, a}]
	if col == nil {
		return s
	}
	return col.Sprint(s)
}

// Set overrides the color used for (t, a); a nil col removes it.
func (c *Colors) Set(t ir.Type, a ColorAttr, col *color.Color) {
	if col == nil {
		delete(c.byKey, colorKey{t, a})
		return
	}
	c.byKey[colorKey{t, a}] = col
}

// Strip removes color escape sequences added by c from s.
func Strip(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
