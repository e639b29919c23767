// Package witness encodes and decodes Segwit witness programs as Bech32
// (witness version 0) and Bech32m (witness versions 1 through 16) strings.
//
// The checksum constant is never chosen by the caller: it is bound to the
// witness version found in the data, on encode and on decode alike. A
// version 0 program carrying a Bech32m checksum, or a version 1+ program
// carrying a plain Bech32 checksum, is rejected with ErrChecksum.
package witness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Charset is the 32-symbol Bech32 data alphabet (excludes 1, b, i, o).
const Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Separator splits the human-readable part from the data part.
const Separator = '1'

const (
	// MaxVersion is the highest witness version.
	MaxVersion = 16

	// MinProgramLen and MaxProgramLen bound a witness program in bytes.
	MinProgramLen = 2
	MaxProgramLen = 40

	// MaxLength is the longest Bech32 string accepted, which also caps the
	// human-readable part at 83 characters.
	MaxLength = 90
)

var (
	ErrMixedCase             = errors.New("witness: mixed case")
	ErrInvalidSeparator      = errors.New("witness: missing or misplaced separator")
	ErrInvalidLength         = errors.New("witness: invalid string length")
	ErrInvalidCharacter      = errors.New("witness: invalid character")
	ErrInvalidHRP            = errors.New("witness: invalid human-readable part")
	ErrChecksum              = errors.New("witness: checksum mismatch")
	ErrInvalidWitnessVersion = errors.New("witness: invalid witness version")
	ErrInvalidPadding        = errors.New("witness: non-zero padding")
	ErrInvalidProgramLength  = errors.New("witness: invalid program length")
)

// ChecksumConst returns the polymod constant bound to a witness version:
// the original Bech32 constant for version 0 and the Bech32m constant for
// every later version.
func ChecksumConst(version byte) bech32.ChecksumConst {
	return bech32.VersionToConsts[encodingFor(version)]
}

func encodingFor(version byte) bech32.Version {
	if version == 0 {
		return bech32.Version0
	}
	return bech32.VersionM
}

// Encode renders a witness program under the given human-readable part. The
// output is always lower case.
func Encode(hrp string, version byte, program []byte) (string, error) {
	hrp = strings.ToLower(hrp)
	if err := validateHRP(hrp); err != nil {
		return "", err
	}
	if version > MaxVersion {
		return "", fmt.Errorf("%w: %d", ErrInvalidWitnessVersion, version)
	}
	if len(program) < MinProgramLen || len(program) > MaxProgramLen {
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidProgramLength,
			len(program))
	}

	// Padding the final group with zero bits cannot fail for 8->5.
	conv, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}
	data := make([]byte, 0, 1+len(conv))
	data = append(data, version)
	data = append(data, conv...)

	var s string
	if encodingFor(version) == bech32.Version0 {
		s, err = bech32.Encode(hrp, data)
	} else {
		s, err = bech32.EncodeM(hrp, data)
	}
	if err != nil {
		return "", mapError(err)
	}
	if len(s) > MaxLength {
		return "", fmt.Errorf("%w: %d characters", ErrInvalidLength, len(s))
	}

	return s, nil
}

// Decode parses a Bech32 or Bech32m witness address and returns its lower
// case human-readable part, witness version and program bytes.
func Decode(text string) (string, byte, []byte, error) {
	hrp, data, encoding, err := bech32.DecodeGeneric(text)
	if err != nil {
		return "", 0, nil, mapError(err)
	}

	if len(data) == 0 {
		return "", 0, nil, fmt.Errorf("%w: no data", ErrInvalidWitnessVersion)
	}
	version := data[0]
	if version > MaxVersion {
		return "", 0, nil, fmt.Errorf("%w: %d", ErrInvalidWitnessVersion,
			version)
	}
	if encoding != encodingFor(version) {
		return "", 0, nil, fmt.Errorf("%w: witness version %d requires "+
			"the %s constant", ErrChecksum, version,
			encodingName(encodingFor(version)))
	}

	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return "", 0, nil, fmt.Errorf("%w: %v", ErrInvalidPadding, err)
	}
	if len(program) < MinProgramLen || len(program) > MaxProgramLen {
		return "", 0, nil, fmt.Errorf("%w: %d bytes",
			ErrInvalidProgramLength, len(program))
	}

	return strings.ToLower(hrp), version, program, nil
}

func validateHRP(hrp string) error {
	if len(hrp) == 0 || len(hrp) > MaxLength-7 {
		return fmt.Errorf("%w: length %d", ErrInvalidHRP, len(hrp))
	}
	for i := 0; i < len(hrp); i++ {
		if hrp[i] < 33 || hrp[i] > 126 {
			return fmt.Errorf("%w: character %q", ErrInvalidHRP, hrp[i])
		}
	}
	return nil
}

func encodingName(v bech32.Version) string {
	if v == bech32.Version0 {
		return "bech32"
	}
	return "bech32m"
}

// mapError translates the bech32 package's error types onto this package's
// sentinels, keeping the original text.
func mapError(err error) error {
	switch err.(type) {
	case bech32.ErrMixedCase:
		return fmt.Errorf("%w: %v", ErrMixedCase, err)
	case bech32.ErrInvalidSeparatorIndex:
		return fmt.Errorf("%w: %v", ErrInvalidSeparator, err)
	case bech32.ErrInvalidLength:
		return fmt.Errorf("%w: %v", ErrInvalidLength, err)
	case bech32.ErrInvalidCharacter, bech32.ErrNonCharsetChar,
		bech32.ErrInvalidDataByte:

		return fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
	case bech32.ErrInvalidChecksum:
		return fmt.Errorf("%w: %v", ErrChecksum, err)
	default:
		return err
	}
}
