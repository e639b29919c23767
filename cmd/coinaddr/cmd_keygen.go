package main

import (
	"encoding/hex"

	"github.com/jessevdk/go-flags"

	"github.com/Amr-9/coinaddr/pkg/address"
	"github.com/Amr-9/coinaddr/pkg/keys"
)

type keygenCommand struct {
	global *globalOptions

	Kind string `long:"kind" short:"k" description:"Address kind: default, legacy, segwit or taproot"`
}

func newKeygenCommand(global *globalOptions) *keygenCommand {
	return &keygenCommand{global: global}
}

func (x *keygenCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"keygen",
		"Generate a new key and its address",
		"Generate a random secp256k1 private key and print it in hex "+
			"and WIF form together with its address",
		x,
	)
	return err
}

func (x *keygenCommand) Execute(_ []string) error {
	e, err := x.global.setup()
	if err != nil {
		return err
	}

	kind, err := address.ParseKind(x.Kind)
	if err != nil {
		return err
	}

	privKey, err := keys.Generate()
	if err != nil {
		return err
	}

	a, err := addressForKey(e.coin, privKey.PubKey(), kind)
	if err != nil {
		return err
	}

	wif, err := keys.WIF(privKey, e.coin.ChainParams(), true)
	if err != nil {
		return err
	}

	warnTaproot(e.log, e.coin, kind)
	e.console.PrintAddress(e.coin, a)
	e.console.PrintKey(hex.EncodeToString(privKey.Serialize()), wif)
	return nil
}
