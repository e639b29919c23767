package address

import (
	"errors"
	"strings"
)

var (
	// ErrInvalid is returned when the text is neither a Base58Check nor a
	// Bech32/Bech32m string.
	ErrInvalid = errors.New("invalid address")

	ErrInvalidCharacter = errors.New("invalid character")
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrVersionMismatch and ErrHRPMismatch report a well-formed encoding
	// that belongs to a different coin than the one asked about.
	ErrVersionMismatch = errors.New("version byte does not match coin")
	ErrHRPMismatch     = errors.New("human-readable part does not match coin")

	ErrMalformedPayload          = errors.New("malformed payload")
	ErrUnsupportedWitnessProgram = errors.New("unsupported witness program")
	ErrUnsupportedKeyLength      = errors.New("unsupported public key length")

	ErrNoSegwit       = errors.New("coin has no segwit support")
	ErrUnknownScript  = errors.New("unknown output script")
	ErrInvalidParams  = errors.New("invalid coin parameters")
	ErrUnknownVariant = errors.New("unknown address variant")
)

// DecodeError reports why neither encoding accepted a string. It matches
// ErrInvalid, its Kind when set, and both codec errors under errors.Is.
type DecodeError struct {
	// Kind is ErrChecksumMismatch, ErrInvalidCharacter, ErrMalformedPayload
	// or nil when no finer classification applies.
	Kind error

	Base58 error
	Bech32 error

	// Hint describes what the input looks like, if recognized.
	Hint string
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(ErrInvalid.Error())
	if e.Kind != nil {
		b.WriteString(": ")
		b.WriteString(e.Kind.Error())
	}
	if e.Hint != "" {
		b.WriteString(" (")
		b.WriteString(e.Hint)
		b.WriteString(")")
	}
	if e.Base58 != nil {
		b.WriteString("; ")
		b.WriteString(e.Base58.Error())
	}
	if e.Bech32 != nil {
		b.WriteString("; ")
		b.WriteString(e.Bech32.Error())
	}
	return b.String()
}

func (e *DecodeError) Unwrap() []error {
	errs := []error{ErrInvalid}
	for _, err := range []error{e.Kind, e.Base58, e.Bech32} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
