package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Amr-9/coinaddr/pkg/base58check"
	"github.com/Amr-9/coinaddr/pkg/witness"
)

// Parse classifies text against a coin's parameters.
//
// Base58Check is tried first. A string that decodes there must carry one of
// the coin's version bytes and a 20 byte payload. Otherwise Bech32/Bech32m
// is tried, and the HRP must match the coin's (ignoring case). Strings that
// neither codec accepts yield a *DecodeError.
func Parse(text string, params Params) (Address, error) {
	version, payload, b58Err := base58check.Decode(text)
	if b58Err == nil {
		return parseLegacy(version, payload, params)
	}

	hrp, witnessVersion, program, bechErr := witness.Decode(text)
	if bechErr == nil {
		if !params.SupportsSegwit() || !strings.EqualFold(hrp, params.HRP) {
			return nil, fmt.Errorf("%w: got %q, want %q", ErrHRPMismatch,
				hrp, params.HRP)
		}
		return newWitness(hrp, witnessVersion, program)
	}

	return nil, decodeError(text, b58Err, bechErr)
}

func parseLegacy(version byte, payload []byte, params Params) (Address, error) {
	if version != params.P2PKH && version != params.P2SH {
		return nil, fmt.Errorf("%w: got %d, want %d or %d",
			ErrVersionMismatch, version, params.P2PKH, params.P2SH)
	}
	if len(payload) != HashLen {
		return nil, fmt.Errorf("%w: %d byte hash", ErrMalformedPayload,
			len(payload))
	}

	a := Legacy{Version: version}
	copy(a.Hash[:], payload)
	return a, nil
}

// newWitness dispatches a witness program onto its variant. Only v0 with a
// 20 or 32 byte program and v1 with a 32 byte program are supported.
func newWitness(hrp string, version byte, program []byte) (Address, error) {
	switch {
	case version == 0 && (len(program) == HashLen ||
		len(program) == ScriptHashProgramLen):

		return SegwitV0{
			HRP:     hrp,
			Program: append([]byte(nil), program...),
		}, nil

	case version == 1 && len(program) == XOnlyKeyLen:
		a := Taproot{HRP: hrp}
		copy(a.Key[:], program)
		return a, nil

	default:
		return nil, fmt.Errorf("%w: version %d with %d byte program",
			ErrUnsupportedWitnessProgram, version, len(program))
	}
}

func decodeError(text string, b58Err, bechErr error) *DecodeError {
	e := &DecodeError{Base58: b58Err, Bech32: bechErr}

	switch {
	case errors.Is(b58Err, base58check.ErrChecksum),
		errors.Is(bechErr, witness.ErrChecksum):

		e.Kind = ErrChecksumMismatch

	case errors.Is(bechErr, witness.ErrInvalidPadding),
		errors.Is(bechErr, witness.ErrInvalidProgramLength),
		errors.Is(bechErr, witness.ErrInvalidWitnessVersion),
		errors.Is(b58Err, base58check.ErrInvalidFormat):

		e.Kind = ErrMalformedPayload

	case errors.Is(b58Err, base58check.ErrInvalidCharacter),
		errors.Is(bechErr, witness.ErrInvalidCharacter):

		e.Kind = ErrInvalidCharacter
	}

	switch {
	case text == "":
		e.Hint = "empty string"
	case common.IsHexAddress(text):
		e.Hint = "account-model hex address"
	}

	return e
}

// Normalize parses text and re-encodes it. Base58Check strings come back
// unchanged; Bech32 strings come back lower case.
func Normalize(text string, params Params) (string, error) {
	a, err := Parse(text, params)
	if err != nil {
		return "", err
	}
	return Encode(a)
}

// IsValid reports whether text is a well-formed address of the coin
// described by params.
func IsValid(text string, params Params) bool {
	_, err := Parse(text, params)
	return err == nil
}
