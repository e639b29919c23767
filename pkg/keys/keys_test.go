package keys_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/coinaddr/pkg/keys"
)

func TestParsePrivateKeyHexAndWIF(t *testing.T) {
	const privHex = "a26b7ffda8ad29cf3aba066cc43ce255cb13b3fba5fa9b638f4685333e3670fd"

	privKey, err := keys.ParsePrivateKey(privHex)
	require.NoError(t, err)
	require.Equal(t, privHex, hex.EncodeToString(privKey.Serialize()))

	wif, err := keys.WIF(privKey, &chaincfg.MainNetParams, true)
	require.NoError(t, err)

	fromWIF, err := keys.ParsePrivateKey(wif)
	require.NoError(t, err)
	require.Equal(t, privKey.Serialize(), fromWIF.Serialize())
	require.Len(t, keys.Compressed(fromWIF), 33)
}

func TestParsePrivateKeyInvalid(t *testing.T) {
	for _, in := range []string{"", "zz", "not a key at all"} {
		_, err := keys.ParsePrivateKey(in)
		require.ErrorIs(t, err, keys.ErrInvalidKey, in)
	}
}

func TestParsePublicKey(t *testing.T) {
	compressed := "039d645d2ce630c2a9a6dbe0cbd0a8fcb7b70241cb8a48424f25593290af2494b9"
	b, err := keys.ParsePublicKey(compressed)
	require.NoError(t, err)
	require.Equal(t, compressed, hex.EncodeToString(b))

	xOnly := "cc8a4bc64d897bddc5fbc2f670f7a8ba0b386779106cf1223c6fc5d7cd6fc115"
	b, err = keys.ParsePublicKey(xOnly)
	require.NoError(t, err)
	require.Len(t, b, 32)

	// The secp256k1 generator point, uncompressed. Y is even.
	uncompressed := "04" +
		"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	b, err = keys.ParsePublicKey(uncompressed)
	require.NoError(t, err)
	require.Equal(t,
		"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		hex.EncodeToString(b))

	privKey, err := keys.Generate()
	require.NoError(t, err)
	b, err = keys.ParsePublicKey(
		hex.EncodeToString(privKey.PubKey().SerializeUncompressed()))
	require.NoError(t, err)
	require.Len(t, b, 33)
	require.Equal(t, keys.Compressed(privKey), b)

	// Off-curve uncompressed key.
	_, err = keys.ParsePublicKey("04" + strings.Repeat("11", 64))
	require.ErrorIs(t, err, keys.ErrInvalidKey)

	_, err = keys.ParsePublicKey("0011")
	require.ErrorIs(t, err, keys.ErrInvalidKey)

	_, err = keys.ParsePublicKey("xyz")
	require.ErrorIs(t, err, keys.ErrInvalidKey)
}

// BIP-86 test vector for m/86'/0'/0'/0/0.
func TestTaprootOutputKeyBIP86(t *testing.T) {
	internal, err := hex.DecodeString(
		"cc8a4bc64d897bddc5fbc2f670f7a8ba0b386779106cf1223c6fc5d7cd6fc115")
	require.NoError(t, err)

	pubKey, err := schnorr.ParsePubKey(internal)
	require.NoError(t, err)

	output, err := keys.TaprootOutputKey(pubKey)
	require.NoError(t, err)
	require.Equal(t,
		"a60869f0dbcf1dc659c9cecbaf8050135ea9e8cdc487053f1dc6880949dc684c",
		hex.EncodeToString(output))
}

func TestTaprootOutputKeyIgnoresParity(t *testing.T) {
	privKey, err := keys.Generate()
	require.NoError(t, err)

	pubKey := privKey.PubKey()
	evenY, err := schnorr.ParsePubKey(schnorr.SerializePubKey(pubKey))
	require.NoError(t, err)

	a, err := keys.TaprootOutputKey(pubKey)
	require.NoError(t, err)
	b, err := keys.TaprootOutputKey(evenY)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
