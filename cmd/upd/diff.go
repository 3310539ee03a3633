package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff returns a line oriented diff of a and b, with "-" and "+"
// marking removed and added lines.
func lineDiff(a, b string, colors bool) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	del, add := fmt.Sprintf, fmt.Sprintf
	if colors {
		del = color.RedString
		add = color.GreenString
	}
	var out strings.Builder
	for _, d := range diffs {
		prefix, paint := "  ", fmt.Sprintf
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, paint = "- ", del
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+ ", add
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(paint("%s", prefix+line))
		}
	}
	return out.String()
}
