package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Out: "output.dimacs"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "o",
		Description: "DIMACS output file (default output.dimacs)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "slang").
		WithSynopsis("slang [opts] <input-file>").
		WithDescription("slang compiles grid constraint programs to DIMACS CNF.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return slangMain(cfg, cc, args)
		})
}
