package witness_test

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Amr-9/coinaddr/pkg/witness"
)

var validAddresses = []struct {
	name    string
	addr    string
	hrp     string
	version byte
	program string
}{
	{
		name:    "bip173 p2wpkh upper case",
		addr:    "BC1QW508D6QEJXTDG4Y5R3ZARVARY0C5XW7KV8F3T4",
		hrp:     "bc",
		version: 0,
		program: "751e76e8199196d454941c45d1b3a323f1433bd6",
	},
	{
		name:    "bip173 testnet p2wsh",
		addr:    "tb1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3q0sl5k7",
		hrp:     "tb",
		version: 0,
		program: "1863143c14c5166804bd19203356da136c985678cd4d27a1b8c6329604903262",
	},
	{
		name:    "bip350 p2tr",
		addr:    "bc1p0xlxvlhemja6c4dqv22uapctqupfhlxm9h8z3k2e72q4k9hcz7vqzk5jj0",
		hrp:     "bc",
		version: 1,
		program: "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
	},
	{
		name:    "bitcoin p2wpkh",
		addr:    "bc1qunq74p3h8425hr6wllevlvqqr6sezfxj262rff",
		hrp:     "bc",
		version: 0,
		program: "e4c1ea86373d554b8f4efff2cfb0001ea19124d2",
	},
	{
		name:    "bitcoin taproot",
		addr:    "bc1pwse34zfpvt344rvlt7tw0ngjtfh9xasc4q03avf0lk74jzjpzjuqaz7ks5",
		hrp:     "bc",
		version: 1,
		program: "74331a892162e35a8d9f5f96e7cd125a6e537618a81f1eb12ffdbd590a4114b8",
	},
}

func TestDecodeValid(t *testing.T) {
	for _, test := range validAddresses {
		t.Run(test.name, func(t *testing.T) {
			hrp, version, program, err := witness.Decode(test.addr)
			require.NoError(t, err)
			require.Equal(t, test.hrp, hrp)
			require.Equal(t, test.version, version)
			require.Equal(t, test.program, hex.EncodeToString(program))

			// Output is always the lower case form.
			encoded, err := witness.Encode(hrp, version, program)
			require.NoError(t, err)
			require.Equal(t, strings.ToLower(test.addr), encoded)
		})
	}
}

func TestChecksumConst(t *testing.T) {
	require.EqualValues(t, 1, witness.ChecksumConst(0))
	require.EqualValues(t, 0x2bc830a3, witness.ChecksumConst(1))
	require.EqualValues(t, 0x2bc830a3, witness.ChecksumConst(16))
}

// encode5 builds a string with a correct checksum under the requested
// constant from raw 5-bit groups, bypassing witness-level checks.
func encode5(t *testing.T, m bool, data []byte) string {
	t.Helper()

	var (
		s   string
		err error
	)
	if m {
		s, err = bech32.EncodeM("bc", data)
	} else {
		s, err = bech32.Encode("bc", data)
	}
	require.NoError(t, err)
	return s
}

func groups(t *testing.T, version byte, program []byte) []byte {
	t.Helper()

	conv, err := bech32.ConvertBits(program, 8, 5, true)
	require.NoError(t, err)
	return append([]byte{version}, conv...)
}

func TestDecodeChecksumBinding(t *testing.T) {
	program20 := bytes.Repeat([]byte{0x75}, 20)
	program32 := bytes.Repeat([]byte{0x79}, 32)

	// Version 0 carrying a bech32m checksum.
	_, _, _, err := witness.Decode(encode5(t, true, groups(t, 0, program20)))
	require.ErrorIs(t, err, witness.ErrChecksum)

	// Version 1 carrying a plain bech32 checksum.
	_, _, _, err = witness.Decode(encode5(t, false, groups(t, 1, program32)))
	require.ErrorIs(t, err, witness.ErrChecksum)

	// Version 16 carrying a plain bech32 checksum.
	_, _, _, err = witness.Decode(encode5(t, false, groups(t, 16, program20)))
	require.ErrorIs(t, err, witness.ErrChecksum)

	// The matching constants decode.
	_, v, _, err := witness.Decode(encode5(t, false, groups(t, 0, program20)))
	require.NoError(t, err)
	require.Equal(t, byte(0), v)

	_, v, _, err = witness.Decode(encode5(t, true, groups(t, 16, program20)))
	require.NoError(t, err)
	require.Equal(t, byte(16), v)
}

func TestDecodeErrors(t *testing.T) {
	valid := "bc1qunq74p3h8425hr6wllevlvqqr6sezfxj262rff"

	nonZeroPadding := groups(t, 1, bytes.Repeat([]byte{0x01}, 32))
	nonZeroPadding[len(nonZeroPadding)-1] |= 0x01

	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"empty", "", witness.ErrInvalidLength},
		{"too long", "bc1" + strings.Repeat("q", 90), witness.ErrInvalidLength},
		{"mixed case", "bc1qunq74p3h8425hr6wllevlvqqr6sezfxj262rfF", witness.ErrMixedCase},
		{"no separator", strings.Replace(valid, "1", "", 1), witness.ErrInvalidSeparator},
		{"empty hrp", valid[2:], witness.ErrInvalidSeparator},
		{"charset", strings.Replace(valid, "unq", "ubq", 1), witness.ErrInvalidCharacter},
		{"control char", "bc1qunq74p3h8425hr6w\x7fevlvqqr6sezfxj262rff", witness.ErrInvalidCharacter},
		{"checksum", valid[:len(valid)-1] + "q", witness.ErrChecksum},
		{"empty data", encode5(t, false, nil), witness.ErrInvalidWitnessVersion},
		{"version 17", encode5(t, true, groups(t, 17, bytes.Repeat([]byte{1}, 32))), witness.ErrInvalidWitnessVersion},
		{"padding", encode5(t, true, nonZeroPadding), witness.ErrInvalidPadding},
		{"one byte program", encode5(t, true, groups(t, 1, []byte{0x75})), witness.ErrInvalidProgramLength},
		{"41 byte program", encode5(t, true, groups(t, 1, bytes.Repeat([]byte{1}, 41))), witness.ErrInvalidProgramLength},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, _, err := witness.Decode(test.in)
			require.ErrorIs(t, err, test.err)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	program := bytes.Repeat([]byte{1}, 20)

	_, err := witness.Encode("", 0, program)
	require.ErrorIs(t, err, witness.ErrInvalidHRP)

	_, err = witness.Encode("b c", 0, program)
	require.ErrorIs(t, err, witness.ErrInvalidHRP)

	_, err = witness.Encode("bc", 17, program)
	require.ErrorIs(t, err, witness.ErrInvalidWitnessVersion)

	_, err = witness.Encode("bc", 0, program[:1])
	require.ErrorIs(t, err, witness.ErrInvalidProgramLength)

	_, err = witness.Encode("bc", 1, bytes.Repeat([]byte{1}, 41))
	require.ErrorIs(t, err, witness.ErrInvalidProgramLength)

	_, err = witness.Encode(strings.Repeat("x", 60), 1, bytes.Repeat([]byte{1}, 40))
	require.ErrorIs(t, err, witness.ErrInvalidLength)
}

func TestEncodeLowerCase(t *testing.T) {
	s, err := witness.Encode("BC", 0, bytes.Repeat([]byte{0xab}, 20))
	require.NoError(t, err)
	require.Equal(t, strings.ToLower(s), s)
	require.True(t, strings.HasPrefix(s, "bc1q"))
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		version := rapid.ByteRange(0, witness.MaxVersion).Draw(t, "version")
		program := rapid.SliceOfN(rapid.Byte(), witness.MinProgramLen,
			witness.MaxProgramLen).Draw(t, "program")
		hrp := rapid.SampledFrom([]string{"bc", "tb", "ltc", "dgb"}).Draw(t, "hrp")

		s, err := witness.Encode(hrp, version, program)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		gotHRP, gotVersion, gotProgram, err := witness.Decode(s)
		if err != nil {
			t.Fatalf("decode %q: %v", s, err)
		}
		if gotHRP != hrp || gotVersion != version ||
			!bytes.Equal(gotProgram, program) {

			t.Fatalf("round trip mismatch for %q", s)
		}

		// Upper case input is accepted and decodes identically.
		_, _, upperProgram, err := witness.Decode(strings.ToUpper(s))
		if err != nil || !bytes.Equal(upperProgram, program) {
			t.Fatalf("upper case %q: %v", s, err)
		}
	})
}

func TestChecksumSensitivityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		version := rapid.SampledFrom([]byte{0, 1}).Draw(t, "version")
		program := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "program")

		s, err := witness.Encode("bc", version, program)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}

		// Substitute one data character with a different charset symbol.
		b := []byte(s)
		pos := rapid.IntRange(3, len(b)-1).Draw(t, "pos")
		shift := rapid.IntRange(1, len(witness.Charset)-1).Draw(t, "shift")
		idx := strings.IndexByte(witness.Charset, b[pos])
		b[pos] = witness.Charset[(idx+shift)%len(witness.Charset)]

		if _, _, _, err := witness.Decode(string(b)); err == nil {
			t.Fatalf("mutated string %q decoded", b)
		}
	})
}
