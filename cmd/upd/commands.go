package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "upd").
		WithSynopsis("upd [opts] command [opts]").
		WithDescription("upd applies update operators to documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return updMain(cfg, cc, args)
		}).
		WithSubs(
			ApplyCommand(cfg),
			BulkCommand(cfg),
			OpsCommand(cfg))
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("apply").
		WithAliases("a").
		WithSynopsis("apply -u update [-diff] [-log] [file]").
		WithDescription("apply an update to a single document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
	cfg.Apply = cmd
	return cmd
}

func BulkCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BulkConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("bulk").
		WithAliases("b").
		WithSynopsis("bulk -u update [-where expr] [-n workers] [-rate n] [-oplog dir] [file]").
		WithDescription("apply an update to every document of a json lines or multi document yaml input").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return bulkCmd(cfg, cc, args)
		})
	cfg.Bulk = cmd
	return cmd
}

func OpsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &OpsConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("ops").
		WithSynopsis("ops").
		WithDescription("list the available update operators").
		WithRun(func(cc *cli.Context, args []string) error {
			return ops(cfg, cc, args)
		})
	cfg.Ops = cmd
	return cmd
}
