package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/slang-lang/slang"
	"github.com/slang-lang/slang/dimacs"
	"github.com/slang-lang/slang/ir"
)

func slangMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: expected argument for file name", cli.ErrUsage)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fail("could not open file %s", args[0])
	}
	res, err := slang.Compile(data)
	if err != nil {
		fail("%v", err)
	}

	ir.Dot(os.Stdout, res.CFG)
	fmt.Println(res.Formula)

	if err := dimacs.WriteFile(cfg.Out, res.CNF); err != nil {
		fail("%v", err)
	}
	return nil
}

// fail prints `err: <message>` to stderr and exits 1. No partial CNF
// is left behind; the output file is only written after a successful
// compile.
func fail(format string, args ...any) {
	errColor := color.New(color.FgRed)
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		errColor.DisableColor()
	}
	errColor.Fprintf(os.Stderr, "err: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
