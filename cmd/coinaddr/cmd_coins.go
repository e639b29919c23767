package main

import (
	"github.com/jessevdk/go-flags"

	"github.com/Amr-9/coinaddr/internal/ui"
	"github.com/Amr-9/coinaddr/pkg/coin"
)

type coinsCommand struct {
	global *globalOptions
}

func newCoinsCommand(global *globalOptions) *coinsCommand {
	return &coinsCommand{global: global}
}

func (x *coinsCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"coins",
		"List the supported coins",
		"List every coin --coin accepts with its address prefixes",
		x,
	)
	return err
}

func (x *coinsCommand) Execute(_ []string) error {
	// The coin flag is irrelevant here, so skip setup and its lookup.
	ui.NewConsole(x.global.stdout, !x.global.NoColor).PrintCoins(coin.All())
	return nil
}
