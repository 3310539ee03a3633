package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signadot/tony-format/upd/encode"
	"github.com/signadot/tony-format/upd/ir"
	"github.com/signadot/tony-format/upd/logbuilder"
	"github.com/signadot/tony-format/upd/modifier"
	"github.com/signadot/tony-format/upd/parse"

	"github.com/scott-cotton/cli"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Diff && cfg.Log {
		return fmt.Errorf("%w: -diff and -log are exclusive", cli.ErrUsage)
	}
	update, err := readUpdate(cc, cfg.MainConfig, cfg.Update, cfg.UpdateFile)
	if err != nil {
		return err
	}
	mods, err := modifier.FromUpdate(update)
	if err != nil {
		return err
	}
	path, err := inputPath(args)
	if err != nil {
		return err
	}
	d, err := readInput(cc, path)
	if err != nil {
		return err
	}
	doc, err := parse.Parse(d, cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", path, err)
	}
	var before *ir.Document
	if cfg.Diff {
		before = doc.Clone()
	}
	lb := logbuilder.New()
	for _, m := range mods {
		info, err := modifier.Run(m, doc.Root(), cfg.Matched, lb)
		if err != nil {
			return fmt.Errorf("%s %s: %w", m.Name(), m.Field(), err)
		}
		theLog.Debug("applied", "op", m.Name(), "field", info.FieldRef.Dotted(),
			"noop", info.NoOp, "inPlace", info.InPlace())
	}
	theLog.Debug("document", "mode", doc.Mode(), "size", doc.Size())
	return writeApply(cfg, cc.Out, before, doc, lb)
}

func writeApply(cfg *ApplyConfig, w io.Writer, before, doc *ir.Document, lb *logbuilder.LogBuilder) error {
	opts := cfg.encOpts(w)
	switch {
	case cfg.Log:
		return encode.Encode(lb.Document().Root(), w, opts...)
	case before != nil:
		if ir.EqualTyped(before.Root(), doc.Root()) {
			theLog.Info("document unchanged")
			return nil
		}
		var a, b bytes.Buffer
		plain := []encode.EncodeOption{encode.EncodeFormat(cfg.format(cfg.OutFormat)), encode.EncodeTyped(cfg.Typed)}
		if err := encode.Encode(before.Root(), &a, plain...); err != nil {
			return err
		}
		if err := encode.Encode(doc.Root(), &b, plain...); err != nil {
			return err
		}
		_, err := io.WriteString(w, lineDiff(a.String(), b.String(), cfg.useColor(w)))
		return err
	default:
		return encode.Encode(doc.Root(), w, opts...)
	}
}
