package address

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

// PayToAddrScript returns the output script paying to a. Params tell a
// Legacy P2PKH hash from a P2SH one.
func PayToAddrScript(a Address, params Params) ([]byte, error) {
	switch a := a.(type) {
	case Legacy:
		switch a.Version {
		case params.P2PKH:
			return txscript.NewScriptBuilder().
				AddOp(txscript.OP_DUP).
				AddOp(txscript.OP_HASH160).
				AddData(a.Hash[:]).
				AddOp(txscript.OP_EQUALVERIFY).
				AddOp(txscript.OP_CHECKSIG).
				Script()
		case params.P2SH:
			return txscript.NewScriptBuilder().
				AddOp(txscript.OP_HASH160).
				AddData(a.Hash[:]).
				AddOp(txscript.OP_EQUAL).
				Script()
		default:
			return nil, fmt.Errorf("%w: version %d", ErrVersionMismatch,
				a.Version)
		}

	case SegwitV0:
		return witnessScript(0, a.Program)

	case Taproot:
		return witnessScript(1, a.Key[:])

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, a)
	}
}

// witnessScript builds OP_n <program>.
func witnessScript(version byte, program []byte) ([]byte, error) {
	op := byte(txscript.OP_0)
	if version > 0 {
		op = byte(txscript.OP_1) - 1 + version
	}
	return txscript.NewScriptBuilder().
		AddOp(op).
		AddData(program).
		Script()
}

// FromScript recovers the address an output script pays to. Only P2PKH,
// P2SH and the witness programs Parse accepts are recognized.
func FromScript(script []byte, params Params) (Address, error) {
	switch {
	case txscript.IsPayToPubKeyHash(script):
		a := Legacy{Version: params.P2PKH}
		copy(a.Hash[:], script[3:3+HashLen])
		return a, nil

	case txscript.IsPayToScriptHash(script):
		a := Legacy{Version: params.P2SH}
		copy(a.Hash[:], script[2:2+HashLen])
		return a, nil

	case txscript.IsWitnessProgram(script):
		if !params.SupportsSegwit() {
			return nil, ErrNoSegwit
		}
		version, program, err := txscript.ExtractWitnessProgramInfo(script)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownScript, err)
		}
		return newWitness(strings.ToLower(params.HRP), byte(version),
			program)

	default:
		return nil, ErrUnknownScript
	}
}
