package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/tony-format/upd/encode"
	"github.com/signadot/tony-format/upd/format"
	"github.com/signadot/tony-format/upd/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`
	Typed   bool `cli:"name=typed desc='mark 64-bit integers in output'"`
	Verbose bool `cli:"name=v desc='log debug messages'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) format(override *format.Format) format.Format {
	var fmat format.Format
	if cfg.Y {
		fmat = format.YAMLFormat
	}
	if override != nil {
		fmat = *override
	}
	return fmat
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.format(cfg.InFormat))}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.format(cfg.OutFormat)),
		encode.EncodeWire(cfg.WireOut),
		encode.EncodeTyped(cfg.Typed),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor reports whether output to w is colored: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			if opt.Value != nil {
				return false
			}
			break
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ApplyConfig struct {
	*MainConfig

	Update     string `cli:"name=u aliases=update desc='update expression'"`
	UpdateFile string `cli:"name=U desc='file holding the update expression'"`
	Diff       bool   `cli:"name=diff desc='show a line diff of the document'"`
	Log        bool   `cli:"name=log desc='show the change log instead of the document'"`
	Matched    string `cli:"name=m aliases=matched desc='array position substituted for $ path segments'"`

	Apply *cli.Command
}

type BulkConfig struct {
	*MainConfig

	Update     string `cli:"name=u aliases=update desc='update expression'"`
	UpdateFile string `cli:"name=U desc='file holding the update expression'"`
	Where      string `cli:"name=where desc='expr-lang filter selecting documents'"`
	Workers    int    `cli:"name=n desc='number of workers (default GOMAXPROCS)'"`
	Rate       int    `cli:"name=rate desc='max documents per second'"`
	Oplog      string `cli:"name=oplog desc='journal change logs to this directory'"`
	NS         string `cli:"name=ns desc='namespace for journaled entries (default upd)'"`
	Log        bool   `cli:"name=log desc='output change logs instead of documents'"`

	Bulk *cli.Command
}

type OpsConfig struct {
	*MainConfig

	Ops *cli.Command
}
