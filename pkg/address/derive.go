package address

import (
	"fmt"
	"strings"
)

// Derive builds the address of the requested kind for a public key.
//
// Legacy and Segwit expect a 33 byte compressed key and commit to its
// hash160. Taproot expects the 32 byte x-only output key, already tweaked;
// no tweaking happens here. The key is only read, never retained.
func Derive(pubKey []byte, kind Kind, params Params) (Address, error) {
	switch kind = params.Resolve(kind); kind {
	case KindLegacy:
		if err := checkKeyLen(pubKey, CompressedKeyLen, kind); err != nil {
			return nil, err
		}
		return Legacy{Version: params.P2PKH, Hash: Hash160(pubKey)}, nil

	case KindSegwit:
		if !params.SupportsSegwit() {
			return nil, ErrNoSegwit
		}
		if err := checkKeyLen(pubKey, CompressedKeyLen, kind); err != nil {
			return nil, err
		}
		hash := Hash160(pubKey)
		return SegwitV0{
			HRP:     strings.ToLower(params.HRP),
			Program: hash[:],
		}, nil

	case KindTaproot:
		if !params.SupportsSegwit() {
			return nil, ErrNoSegwit
		}
		if err := checkKeyLen(pubKey, XOnlyKeyLen, kind); err != nil {
			return nil, err
		}
		a := Taproot{HRP: strings.ToLower(params.HRP)}
		copy(a.Key[:], pubKey)
		return a, nil

	default:
		return nil, fmt.Errorf("unknown address kind %d", kind)
	}
}

func checkKeyLen(pubKey []byte, want int, kind Kind) error {
	if len(pubKey) != want {
		return fmt.Errorf("%w: %s needs %d bytes, got %d",
			ErrUnsupportedKeyLength, kind, want, len(pubKey))
	}
	return nil
}
