package main

import (
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	// Out is the DIMACS output path. The default preserves the
	// external contract of writing ./output.dimacs.
	Out string

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	return nil, nil
}
