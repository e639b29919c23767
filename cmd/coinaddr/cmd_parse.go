package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/jessevdk/go-flags"

	"github.com/Amr-9/coinaddr/pkg/address"
)

type parseCommand struct {
	global *globalOptions

	Dump bool `long:"dump" short:"d" description:"Also dump the decoded value with all its fields"`
}

func newParseCommand(global *globalOptions) *parseCommand {
	return &parseCommand{global: global}
}

func (x *parseCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"parse",
		"Decode and classify addresses",
		"Decode every argument as an address of the selected coin and "+
			"show its type and payload",
		x,
	)
	return err
}

func (x *parseCommand) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one address is required")
	}

	e, err := x.global.setup()
	if err != nil {
		return err
	}

	dump := spew.ConfigState{
		Indent:                  "  ",
		DisableMethods:          true,
		DisablePointerAddresses: true,
	}

	var failed int
	for i, arg := range args {
		if i > 0 {
			e.console.PrintLine("")
		}

		a, err := address.Parse(arg, e.coin.Params)
		if err != nil {
			e.log.WithField("input", arg).WithError(err).Debug(
				"parse failed")
			e.console.PrintError(arg, err)
			failed++
			continue
		}

		e.console.PrintAddress(e.coin, a)
		if x.Dump {
			dump.Fdump(x.global.stdout, a)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d addresses", errInvalidInput,
			failed, len(args))
	}
	return nil
}
