// Package base58check implements the version-prefixed Base58Check encoding
// used by legacy Bitcoin-family addresses (P2PKH and P2SH).
package base58check

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/mr-tron/base58"
)

// Alphabet is the Bitcoin Base58 alphabet (excludes 0, O, I, l).
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ChecksumLen is the number of double-SHA256 bytes appended to the payload.
const ChecksumLen = 4

var (
	// ErrEmpty is returned when decoding an empty string.
	ErrEmpty = errors.New("base58check: empty input")

	// ErrInvalidCharacter indicates a character outside the Base58 alphabet.
	ErrInvalidCharacter = errors.New("base58check: invalid character")

	// ErrInvalidFormat indicates the decoded bytes are too short to hold a
	// version byte and a checksum.
	ErrInvalidFormat = errors.New("base58check: version and/or checksum bytes missing")

	// ErrChecksum indicates the embedded checksum does not match.
	ErrChecksum = errors.New("base58check: checksum mismatch")
)

// checksum returns the first four bytes of SHA256(SHA256(input)).
func checksum(input []byte) (cksum [ChecksumLen]byte) {
	h := chainhash.DoubleHashB(input)
	copy(cksum[:], h[:ChecksumLen])
	return
}

// Encode prepends the version byte, appends a 4-byte checksum and encodes
// the result in Base58. Each leading zero byte becomes a leading '1'.
func Encode(version byte, payload []byte) string {
	b := make([]byte, 0, 1+len(payload)+ChecksumLen)
	b = append(b, version)
	b = append(b, payload...)
	cksum := checksum(b)
	b = append(b, cksum[:]...)

	return base58.Encode(b)
}

// Decode verifies and strips the checksum of a Base58Check string and
// returns its version byte and payload.
func Decode(text string) (byte, []byte, error) {
	if text == "" {
		return 0, nil, ErrEmpty
	}
	if i := strings.IndexFunc(text, invalidRune); i >= 0 {
		r, _ := utf8.DecodeRuneInString(text[i:])
		return 0, nil, fmt.Errorf("%w %q at position %d",
			ErrInvalidCharacter, r, i)
	}

	decoded, err := base58.Decode(text)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
	}
	if len(decoded) < 1+ChecksumLen {
		return 0, nil, ErrInvalidFormat
	}

	body := decoded[:len(decoded)-ChecksumLen]
	var cksum [ChecksumLen]byte
	copy(cksum[:], decoded[len(decoded)-ChecksumLen:])
	if checksum(body) != cksum {
		return 0, nil, ErrChecksum
	}

	payload := make([]byte, len(body)-1)
	copy(payload, body[1:])

	return body[0], payload, nil
}

// IsValidChar checks if a character is valid in Base58 encoding.
func IsValidChar(c rune) bool {
	return strings.ContainsRune(Alphabet, c)
}

// InvalidChars returns any characters of s outside the Base58 alphabet.
// Useful for providing helpful error messages to users.
func InvalidChars(s string) []rune {
	var invalid []rune
	for _, c := range s {
		if !IsValidChar(c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}

func invalidRune(c rune) bool {
	return !IsValidChar(c)
}
