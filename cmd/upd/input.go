package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/tony-format/upd/ir"
	"github.com/signadot/tony-format/upd/parse"

	"github.com/scott-cotton/cli"
	"github.com/tidwall/gjson"
)

func readInput(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// readUpdate returns the update document given by -u or -U.
func readUpdate(cc *cli.Context, mainCfg *MainConfig, expr, file string) (*ir.Document, error) {
	var d []byte
	switch {
	case expr != "" && file != "":
		return nil, fmt.Errorf("%w: -u and -U are exclusive", cli.ErrUsage)
	case expr != "":
		d = []byte(expr)
	case file != "":
		var err error
		if d, err = readInput(cc, file); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: an update is required (-u or -U)", cli.ErrUsage)
	}
	doc, err := parse.Parse(d, mainCfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error decoding update: %w", err)
	}
	return doc, nil
}

// splitDocs reads a multi document input: JSON lines, or YAML documents
// separated by "---".
func splitDocs(mainCfg *MainConfig, d []byte) ([]*ir.Document, error) {
	opts := mainCfg.parseOpts()
	if mainCfg.format(mainCfg.InFormat).IsYAML() {
		return parse.ParseAll(d, opts...)
	}
	var (
		res  []*ir.Document
		err  error
		line int
	)
	gjson.ForEachLine(string(bytes.TrimSpace(d)), func(r gjson.Result) bool {
		line++
		var doc *ir.Document
		doc, err = parse.Parse([]byte(r.Raw), opts...)
		if err != nil {
			err = fmt.Errorf("line %d: %w", line, err)
			return false
		}
		res = append(res, doc)
		return true
	})
	return res, err
}

func inputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "-", nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected at most one input file, got %v", cli.ErrUsage, args)
	}
}
