package main

import (
	"fmt"

	"github.com/jessevdk/go-flags"

	"github.com/Amr-9/coinaddr/internal/ui"
	"github.com/Amr-9/coinaddr/pkg/address"
)

type normalizeCommand struct {
	global *globalOptions
}

func newNormalizeCommand(global *globalOptions) *normalizeCommand {
	return &normalizeCommand{global: global}
}

func (x *normalizeCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"normalize",
		"Print addresses in canonical form",
		"Parse every argument, or every line of stdin when there "+
			"are no arguments, and print it re-encoded: Base58Check "+
			"addresses unchanged, Bech32 and Bech32m addresses in "+
			"lower case",
		x,
	)
	return err
}

func (x *normalizeCommand) Execute(args []string) error {
	e, err := x.global.setup()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args, err = ui.ReadLines(x.global.stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		if len(args) == 0 {
			return fmt.Errorf("at least one address is required")
		}
	}

	var failed int
	for _, arg := range args {
		s, err := address.Normalize(arg, e.coin.Params)
		if err != nil {
			e.console.PrintError(arg, err)
			failed++
			continue
		}
		e.console.PrintLine(s)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d addresses", errInvalidInput,
			failed, len(args))
	}
	return nil
}
