// Package address models Bitcoin-family addresses as a closed set of
// variants and converts between them, public keys and text.
//
// Three variants exist: Legacy (Base58Check, P2PKH or P2SH), SegwitV0
// (Bech32, P2WPKH or P2WSH) and Taproot (Bech32m, P2TR). Every function in
// this package is pure; Params and Address values may be shared freely
// between goroutines.
package address

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/ripemd160"

	"github.com/Amr-9/coinaddr/pkg/base58check"
	"github.com/Amr-9/coinaddr/pkg/witness"
)

const (
	// HashLen is the size of a hash160 digest.
	HashLen = ripemd160.Size

	// CompressedKeyLen and XOnlyKeyLen are the accepted public key sizes.
	CompressedKeyLen = 33
	XOnlyKeyLen      = 32

	// ScriptHashProgramLen is the witness v0 program size of P2WSH.
	ScriptHashProgramLen = 32
)

// Address is one of Legacy, SegwitV0 or Taproot. The set is closed: no type
// outside this package can implement it.
//
// SegwitV0 holds a slice, so Address values must not be compared with == or
// used as map keys. Use Equal, or key maps by String.
type Address interface {
	// String returns the canonical text form, or "" for a value that
	// cannot be encoded. Use Encode to get the error instead.
	String() string

	// Data returns a copy of the payload: the hash160 for Legacy, the
	// witness program for SegwitV0 and the x-only key for Taproot.
	Data() []byte

	sealed()
}

// Legacy is a Base58Check address. Version tells P2PKH from P2SH.
type Legacy struct {
	Version byte
	Hash    [HashLen]byte
}

// SegwitV0 is a witness version 0 address. A 20 byte program is P2WPKH, a
// 32 byte one P2WSH. It is not comparable; see Equal.
type SegwitV0 struct {
	HRP     string
	Program []byte
}

// Taproot is a witness version 1 address holding an x-only output key.
type Taproot struct {
	HRP string
	Key [XOnlyKeyLen]byte
}

func (Legacy) sealed()   {}
func (SegwitV0) sealed() {}
func (Taproot) sealed()  {}

func (a Legacy) String() string   { return mustEncode(a) }
func (a SegwitV0) String() string { return mustEncode(a) }
func (a Taproot) String() string  { return mustEncode(a) }

func (a Legacy) Data() []byte {
	return append([]byte(nil), a.Hash[:]...)
}

func (a SegwitV0) Data() []byte {
	return append([]byte(nil), a.Program...)
}

func (a Taproot) Data() []byte {
	return append([]byte(nil), a.Key[:]...)
}

// IsScriptHash reports whether the version byte is the coin's P2SH prefix.
func (a Legacy) IsScriptHash(params Params) bool {
	return a.Version == params.P2SH
}

// IsScriptHash reports whether the program is a P2WSH script hash.
func (a SegwitV0) IsScriptHash() bool {
	return len(a.Program) == ScriptHashProgramLen
}

// Encode serializes an address to its canonical text form: Base58Check for
// Legacy, lower case Bech32 for SegwitV0 and lower case Bech32m for Taproot.
func Encode(a Address) (string, error) {
	switch a := a.(type) {
	case Legacy:
		return base58check.Encode(a.Version, a.Hash[:]), nil
	case SegwitV0:
		return witness.Encode(a.HRP, 0, a.Program)
	case Taproot:
		return witness.Encode(a.HRP, 1, a.Key[:])
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownVariant, a)
	}
}

func mustEncode(a Address) string {
	s, err := Encode(a)
	if err != nil {
		return ""
	}
	return s
}

// Equal reports whether a and b are the same variant with identical fields.
func Equal(a, b Address) bool {
	switch a := a.(type) {
	case Legacy:
		b, ok := b.(Legacy)
		return ok && a == b
	case SegwitV0:
		b, ok := b.(SegwitV0)
		return ok && a.HRP == b.HRP && bytes.Equal(a.Program, b.Program)
	case Taproot:
		b, ok := b.(Taproot)
		return ok && a == b
	default:
		return false
	}
}

// Type names the output type of an address.
type Type string

const (
	TypeP2PKH  Type = "p2pkh"  // Legacy (1...)
	TypeP2SH   Type = "p2sh"   // Script hash (3...)
	TypeP2WPKH Type = "p2wpkh" // Native SegWit (bc1q...)
	TypeP2WSH  Type = "p2wsh"  // SegWit script (bc1q...)
	TypeP2TR   Type = "p2tr"   // Taproot (bc1p...)
)

// TypeOf returns the output type of a. Params are needed to tell P2PKH
// from P2SH.
func TypeOf(a Address, params Params) Type {
	switch a := a.(type) {
	case Legacy:
		if a.IsScriptHash(params) {
			return TypeP2SH
		}
		return TypeP2PKH
	case SegwitV0:
		if a.IsScriptHash() {
			return TypeP2WSH
		}
		return TypeP2WPKH
	case Taproot:
		return TypeP2TR
	default:
		return ""
	}
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) [HashLen]byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])

	var out [HashLen]byte
	copy(out[:], h.Sum(nil))
	return out
}
