package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/signadot/tony-format/upd/bulk"
	"github.com/signadot/tony-format/upd/encode"
	"github.com/signadot/tony-format/upd/eval"
	"github.com/signadot/tony-format/upd/ir"
	"github.com/signadot/tony-format/upd/system/oplog"

	"github.com/scott-cotton/cli"
)

func bulkCmd(cfg *BulkConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Bulk.Parse(cc, args)
	if err != nil {
		return err
	}
	update, err := readUpdate(cc, cfg.MainConfig, cfg.Update, cfg.UpdateFile)
	if err != nil {
		return err
	}
	opts := bulk.Options{
		Update:  update,
		Workers: cfg.Workers,
		Rate:    float64(cfg.Rate),
		Logger:  theLog,
	}
	if cfg.Where != "" {
		if opts.Filter, err = eval.CompileFilter(cfg.Where); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	runner, err := bulk.New(opts)
	if err != nil {
		return err
	}
	var journal *oplog.Journal
	if cfg.Oplog != "" {
		if journal, err = oplog.Open(cfg.Oplog, 022, theLog); err != nil {
			return fmt.Errorf("failed to open oplog: %w", err)
		}
	}
	ns := cfg.NS
	if ns == "" {
		ns = "upd"
	}

	path, err := inputPath(args)
	if err != nil {
		return err
	}
	d, err := readInput(cc, path)
	if err != nil {
		return err
	}
	docs, err := splitDocs(cfg.MainConfig, d)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", path, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, err := runner.Run(ctx, docs)
	if err != nil {
		return err
	}
	var updated, failed, written int
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			failed++
			theLog.Error("document failed", "index", res.Index, "error", res.Err)
			continue
		}
		if res.Matched && !res.NoOp {
			updated++
			if journal != nil {
				e, err := journal.Append(ns, res.Log)
				if err != nil {
					return err
				}
				theLog.Debug("journaled", "index", res.Index, "seq", e.Seq)
			}
		}
		ok, err := writeBulkResult(cfg, cc.Out, res, written)
		if err != nil {
			return err
		}
		if ok {
			written++
		}
	}
	theLog.Info("bulk", "docs", len(results), "updated", updated, "failed", failed)
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// writeBulkResult writes the document, or its change log with -log, and
// reports whether anything was written. written counts earlier outputs.
func writeBulkResult(cfg *BulkConfig, w io.Writer, res *bulk.Result, written int) (bool, error) {
	var elem ir.Element
	switch {
	case !cfg.Log:
		elem = res.Doc.Root()
	case res.Log != nil && !res.NoOp:
		elem = res.Log.Document().Root()
	default:
		return false, nil
	}
	opts := cfg.encOpts(w)
	fmat := cfg.format(cfg.OutFormat)
	if fmat.IsJSON() {
		// one document per line
		opts = append(opts, encode.EncodeWire(true))
	} else if written > 0 {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return false, err
		}
	}
	return true, encode.Encode(elem, w, opts...)
}
