// Package coin maps named Bitcoin-family coins to the address parameters
// the codec consumes. All values are hardcoded here.
package coin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/Amr-9/coinaddr/pkg/address"
)

// Coin identifies a supported network.
type Coin int

const (
	Bitcoin        Coin = iota // Bitcoin (1..., 3..., bc1...)
	BitcoinTestnet             // Bitcoin testnet3 (m/n..., 2..., tb1...)
	Litecoin                   // Litecoin (L..., M..., ltc1...)
	Dogecoin                   // Dogecoin (D..., 9/A...), no segwit
	DigiByte                   // DigiByte (D..., S..., dgb1...)
	Viacoin                    // Viacoin (V..., E..., via1...)
	Syscoin                    // Syscoin (S..., 3..., sys1...)
	Qtum                       // Qtum (Q..., M..., qc1...)
	Dash                       // Dash (X..., 7...), no segwit
)

// String returns the coin name.
func (c Coin) String() string {
	if info, ok := registry[c]; ok {
		return info.Name
	}
	return "Unknown"
}

// Info describes one coin.
type Info struct {
	Coin    Coin
	Symbol  string
	Name    string
	Params  address.Params
	WIF     byte // private key version byte
	Taproot bool // P2TR addresses are in use on this network
}

var registry = map[Coin]Info{
	Bitcoin: {
		Coin: Bitcoin, Symbol: "BTC", Name: "Bitcoin",
		Params:  address.Params{P2PKH: 0x00, P2SH: 0x05, HRP: "bc"},
		WIF:     0x80,
		Taproot: true,
	},
	BitcoinTestnet: {
		Coin: BitcoinTestnet, Symbol: "TBTC", Name: "Bitcoin Testnet",
		Params:  address.Params{P2PKH: 0x6f, P2SH: 0xc4, HRP: "tb"},
		WIF:     0xef,
		Taproot: true,
	},
	Litecoin: {
		Coin: Litecoin, Symbol: "LTC", Name: "Litecoin",
		Params:  address.Params{P2PKH: 0x30, P2SH: 0x32, HRP: "ltc"},
		WIF:     0xb0,
		Taproot: true,
	},
	Dogecoin: {
		Coin: Dogecoin, Symbol: "DOGE", Name: "Dogecoin",
		Params: address.Params{P2PKH: 0x1e, P2SH: 0x16},
		WIF:    0x9e,
	},
	DigiByte: {
		Coin: DigiByte, Symbol: "DGB", Name: "DigiByte",
		Params: address.Params{P2PKH: 0x1e, P2SH: 0x3f, HRP: "dgb"},
		WIF:    0x80,
	},
	Viacoin: {
		Coin: Viacoin, Symbol: "VIA", Name: "Viacoin",
		Params: address.Params{P2PKH: 0x47, P2SH: 0x21, HRP: "via"},
		WIF:    0xc7,
	},
	Syscoin: {
		Coin: Syscoin, Symbol: "SYS", Name: "Syscoin",
		Params: address.Params{P2PKH: 0x3f, P2SH: 0x05, HRP: "sys"},
		WIF:    0x80,
	},
	Qtum: {
		Coin: Qtum, Symbol: "QTUM", Name: "Qtum",
		Params: address.Params{P2PKH: 0x3a, P2SH: 0x32, HRP: "qc"},
		WIF:    0x80,
	},
	Dash: {
		Coin: Dash, Symbol: "DASH", Name: "Dash",
		Params: address.Params{P2PKH: 0x4c, P2SH: 0x10},
		WIF:    0xcc,
	},
}

// Get returns the registry entry for c.
func Get(c Coin) (Info, bool) {
	info, ok := registry[c]
	return info, ok
}

// Lookup finds a coin by name or symbol, ignoring case.
func Lookup(name string) (Info, error) {
	name = strings.TrimSpace(name)
	for _, info := range registry {
		if strings.EqualFold(info.Symbol, name) ||
			strings.EqualFold(info.Name, name) {

			return info, nil
		}
	}
	return Info{}, fmt.Errorf("unknown coin %q", name)
}

// All returns every registered coin in declaration order.
func All() []Info {
	all := make([]Info, 0, len(registry))
	for _, info := range registry {
		all = append(all, info)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Coin < all[j].Coin
	})
	return all
}

// ChainParams returns a chaincfg view of the coin for btcutil helpers
// such as WIF encoding. Only the address and key prefixes are filled in.
func (i Info) ChainParams() *chaincfg.Params {
	return &chaincfg.Params{
		Name:             i.Name,
		PubKeyHashAddrID: i.Params.P2PKH,
		ScriptHashAddrID: i.Params.P2SH,
		Bech32HRPSegwit:  i.Params.HRP,
		PrivateKeyID:     i.WIF,
	}
}

// DefaultKind returns the address kind a new key derives to by default.
func (i Info) DefaultKind() address.Kind {
	return i.Params.Resolve(address.KindDefault)
}
