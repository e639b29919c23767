// Package keys turns secp256k1 key material into the public key bytes the
// address package consumes: 33 byte compressed keys for Legacy and Segwit
// addresses, and 32 byte tweaked x-only output keys for Taproot.
package keys

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ErrInvalidKey is returned for key material that cannot be parsed.
var ErrInvalidKey = errors.New("invalid key")

// uncompressedKeyLen is the length of an SEC1 uncompressed public key,
// 0x04 followed by the X and Y coordinates.
const uncompressedKeyLen = 65

// Generate creates a new random secp256k1 private key.
func Generate() (*btcec.PrivateKey, error) {
	var privKeyBytes [32]byte
	if _, err := rand.Read(privKeyBytes[:]); err != nil {
		return nil, err
	}

	privKey, _ := btcec.PrivKeyFromBytes(privKeyBytes[:])
	return privKey, nil
}

// ParsePrivateKey accepts a 64 character hex scalar or a WIF string.
func ParsePrivateKey(s string) (*btcec.PrivateKey, error) {
	s = strings.TrimSpace(s)

	if len(s) == 64 {
		b, err := hex.DecodeString(s)
		if err == nil {
			privKey, _ := btcec.PrivKeyFromBytes(b)
			return privKey, nil
		}
	}

	wif, err := btcutil.DecodeWIF(s)
	if err != nil {
		return nil, fmt.Errorf("%w: neither hex nor WIF: %v",
			ErrInvalidKey, err)
	}
	return wif.PrivKey, nil
}

// ParsePublicKey decodes a hex public key: 33 byte compressed, 65 byte
// uncompressed (returned compressed) or 32 byte x-only (returned as is).
func ParsePublicKey(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	switch len(b) {
	case schnorr.PubKeyBytesLen:
		if _, err := schnorr.ParsePubKey(b); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return b, nil
	case btcec.PubKeyBytesLenCompressed, uncompressedKeyLen:
		pubKey, err := btcec.ParsePubKey(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		return pubKey.SerializeCompressed(), nil
	default:
		return nil, fmt.Errorf("%w: %d byte public key", ErrInvalidKey,
			len(b))
	}
}

// Compressed returns the 33 byte compressed public key of privKey.
func Compressed(privKey *btcec.PrivateKey) []byte {
	return privKey.PubKey().SerializeCompressed()
}

// TaprootOutputKey computes the BIP-341 key-path-only output key for an
// internal key and returns it in 32 byte x-only form:
//
//	Q = lift_x(P) + TaggedHash("TapTweak", x(P)) * G
func TaprootOutputKey(pubKey *btcec.PublicKey) ([]byte, error) {
	// lift_x picks the even-Y point sharing P's x coordinate.
	xOnly := schnorr.SerializePubKey(pubKey)
	internal, err := schnorr.ParsePubKey(xOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	tweak := chainhash.TaggedHash(chainhash.TagTapTweak, xOnly)
	var tweakScalar btcec.ModNScalar
	tweakScalar.SetBytes((*[32]byte)(tweak))

	var p, t, q btcec.JacobianPoint
	internal.AsJacobian(&p)
	btcec.ScalarBaseMultNonConst(&tweakScalar, &t)
	btcec.AddNonConst(&p, &t, &q)
	q.ToAffine()

	return schnorr.SerializePubKey(btcec.NewPublicKey(&q.X, &q.Y)), nil
}

// WIF encodes privKey in wallet import format using the version byte of
// net; compressed selects the 0x01 suffix.
func WIF(privKey *btcec.PrivateKey, net *chaincfg.Params, compressed bool) (string, error) {
	wif, err := btcutil.NewWIF(privKey, net, compressed)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}
