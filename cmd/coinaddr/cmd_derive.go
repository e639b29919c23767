package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/Amr-9/coinaddr/pkg/address"
	"github.com/Amr-9/coinaddr/pkg/coin"
	"github.com/Amr-9/coinaddr/pkg/keys"
)

// errInvalidInput marks a command that ran but rejected some of its inputs.
var errInvalidInput = errors.New("invalid input")

type deriveCommand struct {
	global *globalOptions

	Kind   string `long:"kind" short:"k" description:"Address kind: default, legacy, segwit or taproot"`
	PubKey bool   `long:"pubkey" description:"Treat the argument as a hex public key; a 32 byte x-only key is used as the taproot output key as is"`
}

func newDeriveCommand(global *globalOptions) *deriveCommand {
	return &deriveCommand{global: global}
}

func (x *deriveCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"derive",
		"Derive the address of a key",
		"Derive the address of a private key (hex or WIF) or, with "+
			"--pubkey, of a public key. The key is read from the "+
			"first argument or, if none is given, from stdin",
		x,
	)
	return err
}

func (x *deriveCommand) Execute(args []string) error {
	e, err := x.global.setup()
	if err != nil {
		return err
	}

	kind, err := address.ParseKind(x.Kind)
	if err != nil {
		return err
	}

	var input string
	switch len(args) {
	case 0:
		reader := bufio.NewReader(x.global.stdin)
		label := "Private key (hex or WIF)"
		if x.PubKey {
			label = "Public key (hex)"
		}
		input, err = e.console.Prompt(reader, label)
		if err != nil {
			return fmt.Errorf("error reading key from stdin: %w", err)
		}
	case 1:
		input = args[0]
	default:
		return fmt.Errorf("expected one key, got %d arguments", len(args))
	}

	var a address.Address
	if x.PubKey {
		a, err = addressForPubKeyHex(e.coin, input, kind)
	} else {
		var privKey *btcec.PrivateKey
		privKey, err = keys.ParsePrivateKey(input)
		if err == nil {
			a, err = addressForKey(e.coin, privKey.PubKey(), kind)
		}
	}
	if err != nil {
		return err
	}

	warnTaproot(e.log, e.coin, kind)
	e.console.PrintAddress(e.coin, a)
	return nil
}

// addressForKey derives the address of a full public key, applying the
// taproot tweak when the resolved kind calls for it.
func addressForKey(info coin.Info, pubKey *btcec.PublicKey,
	kind address.Kind) (address.Address, error) {

	kind = info.Params.Resolve(kind)
	if kind != address.KindTaproot {
		return address.Derive(pubKey.SerializeCompressed(), kind,
			info.Params)
	}

	outputKey, err := keys.TaprootOutputKey(pubKey)
	if err != nil {
		return nil, err
	}
	return address.Derive(outputKey, kind, info.Params)
}

func addressForPubKeyHex(info coin.Info, s string,
	kind address.Kind) (address.Address, error) {

	b, err := keys.ParsePublicKey(s)
	if err != nil {
		return nil, err
	}

	// x-only keys are only meaningful as taproot output keys.
	if len(b) == address.XOnlyKeyLen {
		return address.Derive(b, kind, info.Params)
	}

	pubKey, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", keys.ErrInvalidKey, err)
	}
	return addressForKey(info, pubKey, kind)
}

func warnTaproot(log logrus.FieldLogger, info coin.Info, kind address.Kind) {
	if info.Params.Resolve(kind) == address.KindTaproot && !info.Taproot {
		log.WithField("coin", info.Name).Warn("taproot is not " +
			"in use on this network, funds sent to this address " +
			"may not be spendable")
	}
}
