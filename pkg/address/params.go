package address

import (
	"fmt"
	"strings"
)

// Params holds the per-coin prefixes an address is encoded under. The coin
// registry supplies these; the codec only consumes them.
type Params struct {
	P2PKH byte   // Base58Check version byte for pay-to-pubkey-hash
	P2SH  byte   // Base58Check version byte for pay-to-script-hash
	HRP   string // Bech32 human-readable prefix, empty if the coin has no segwit
}

// Validate checks the invariants of a parameter set.
func (p Params) Validate() error {
	if p.P2PKH == p.P2SH {
		return fmt.Errorf("%w: p2pkh and p2sh share version %d",
			ErrInvalidParams, p.P2PKH)
	}
	for i := 0; i < len(p.HRP); i++ {
		if p.HRP[i] < 33 || p.HRP[i] > 126 {
			return fmt.Errorf("%w: hrp character %q", ErrInvalidParams,
				p.HRP[i])
		}
	}
	return nil
}

// SupportsSegwit reports whether witness addresses can be built for the coin.
func (p Params) SupportsSegwit() bool {
	return p.HRP != ""
}

// Resolve maps KindDefault onto the concrete kind for these params: Segwit
// for coins with an HRP, Legacy otherwise. Other kinds pass through.
func (p Params) Resolve(kind Kind) Kind {
	if kind != KindDefault {
		return kind
	}
	if p.SupportsSegwit() {
		return KindSegwit
	}
	return KindLegacy
}

// Kind selects which address a public key is derived into.
type Kind int

const (
	KindDefault Kind = iota // Segwit when supported, else Legacy
	KindLegacy              // P2PKH - Base58Check
	KindSegwit              // P2WPKH - Bech32, witness v0
	KindTaproot             // P2TR - Bech32m, witness v1
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLegacy:
		return "Legacy (P2PKH)"
	case KindSegwit:
		return "Segwit (P2WPKH)"
	case KindTaproot:
		return "Taproot (P2TR)"
	case KindDefault:
		return "Default"
	default:
		return "Unknown"
	}
}

// ParseKind converts a user-supplied kind name. The empty string and
// "default" map to KindDefault.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return KindDefault, nil
	case "legacy", "p2pkh":
		return KindLegacy, nil
	case "segwit", "p2wpkh":
		return KindSegwit, nil
	case "taproot", "p2tr":
		return KindTaproot, nil
	default:
		return KindDefault, fmt.Errorf("unknown address kind %q", s)
	}
}
