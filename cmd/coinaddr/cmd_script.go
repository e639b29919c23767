package main

import (
	"encoding/hex"
	"fmt"

	"github.com/jessevdk/go-flags"

	"github.com/Amr-9/coinaddr/pkg/address"
)

type scriptCommand struct {
	global *globalOptions

	Reverse bool `long:"reverse" short:"r" description:"Read hex output scripts and print the addresses they pay to"`
}

func newScriptCommand(global *globalOptions) *scriptCommand {
	return &scriptCommand{global: global}
}

func (x *scriptCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"script",
		"Convert between addresses and output scripts",
		"Print the hex output script paying to every address given, "+
			"or with --reverse the address every hex script pays to",
		x,
	)
	return err
}

func (x *scriptCommand) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one argument is required")
	}

	e, err := x.global.setup()
	if err != nil {
		return err
	}

	var failed int
	for _, arg := range args {
		if x.Reverse {
			err = x.toAddress(e, arg)
		} else {
			err = x.toScript(e, arg)
		}
		if err != nil {
			e.console.PrintError(arg, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d arguments", errInvalidInput,
			failed, len(args))
	}
	return nil
}

func (x *scriptCommand) toScript(e *env, arg string) error {
	a, err := address.Parse(arg, e.coin.Params)
	if err != nil {
		return err
	}
	script, err := address.PayToAddrScript(a, e.coin.Params)
	if err != nil {
		return err
	}
	e.console.PrintScript(script)
	return nil
}

func (x *scriptCommand) toAddress(e *env, arg string) error {
	script, err := hex.DecodeString(arg)
	if err != nil {
		return fmt.Errorf("invalid hex script: %w", err)
	}
	a, err := address.FromScript(script, e.coin.Params)
	if err != nil {
		return err
	}
	e.console.PrintLine(a.String())
	return nil
}
