package ui

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Amr-9/coinaddr/pkg/address"
	"github.com/Amr-9/coinaddr/pkg/base58check"
	"github.com/Amr-9/coinaddr/pkg/batch"
	"github.com/Amr-9/coinaddr/pkg/coin"
	"github.com/Amr-9/coinaddr/pkg/witness"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

// Console renders command output, optionally with ANSI colors.
type Console struct {
	w     io.Writer
	color bool
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer, color bool) *Console {
	return &Console{w: w, color: color}
}

// paint wraps s in the given color codes when colors are enabled.
func (c *Console) paint(codes, s string) string {
	if !c.color || codes == "" {
		return s
	}
	return codes + s + ColorReset
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.w, format, args...)
}

// coinLabel picks the heading symbol for a coin.
func coinLabel(info coin.Info) string {
	switch info.Coin {
	case coin.Bitcoin, coin.BitcoinTestnet:
		return "₿ " + strings.ToUpper(info.Name) + " ADDRESS"
	case coin.Litecoin:
		return "Ł " + strings.ToUpper(info.Name) + " ADDRESS"
	case coin.Dogecoin:
		return "Ð " + strings.ToUpper(info.Name) + " ADDRESS"
	default:
		return "📍 " + strings.ToUpper(info.Name) + " ADDRESS"
	}
}

// PrintAddress shows one address with its type and payload.
func (c *Console) PrintAddress(info coin.Info, a address.Address) {
	c.printf("    %s\n\n", c.paint(ColorCyan+ColorBold, coinLabel(info)))
	c.printf("       %s\n\n", c.paint(ColorGreen+ColorBold, a.String()))
	c.printf("    %s  %s\n", c.paint(ColorDim, "type"),
		address.TypeOf(a, info.Params))
	c.printf("    %s  %s\n", c.paint(ColorDim, "data"),
		hex.EncodeToString(a.Data()))
}

// PrintKey shows a private key in hex and WIF form.
func (c *Console) PrintKey(privHex, wif string) {
	c.printf("\n    %s\n", c.paint(ColorPurple+ColorBold, "🔑 PRIVATE KEY"))
	c.printf("       %s\n", c.paint(ColorYellow, privHex))
	if wif != "" {
		c.printf("       %s\n", c.paint(ColorYellow, wif))
	}
	c.printf("\n    %s\n", c.paint(ColorRed+ColorBold,
		"⚠  KEEP YOUR PRIVATE KEY SECRET!"))
}

// PrintScript shows an output script in hex.
func (c *Console) PrintScript(script []byte) {
	c.printf("%s\n", hex.EncodeToString(script))
}

// PrintLine writes s on its own line without decoration.
func (c *Console) PrintLine(s string) {
	c.printf("%s\n", s)
}

// PrintResult shows one batch result on a single line.
func (c *Console) PrintResult(r batch.Result) {
	if r.Valid() {
		c.printf("%s %s %s\n", c.paint(ColorGreen, "✓"), r.Input,
			c.paint(ColorDim, string(r.Type)))
		return
	}
	c.printf("%s %s %s\n", c.paint(ColorRed, "✗"), r.Input,
		c.paint(ColorDim, r.Err.Error()))
}

// PrintSummary shows the counters of a finished batch run.
func (c *Console) PrintSummary(stats batch.Stats) {
	elapsed := time.Duration(stats.ElapsedSecs * float64(time.Second))
	c.printf("\n    %s %s   %s %s   %s %s   %s %s\n",
		c.paint(ColorCyan, "⏱"), FormatDuration(elapsed),
		c.paint(ColorGreen, "✓"), FormatNumber(stats.Valid),
		c.paint(ColorRed, "✗"), FormatNumber(stats.Invalid),
		c.paint(ColorPurple, "📊"), FormatRate(stats.Rate))
}

// PrintCoins lists the registered coins and their prefixes.
func (c *Console) PrintCoins(coins []coin.Info) {
	c.printf("    %s\n", c.paint(ColorPurple+ColorBold, "🌐 COINS"))
	for _, info := range coins {
		hrp := info.Params.HRP
		if hrp == "" {
			hrp = "-"
		}
		taproot := ""
		if info.Taproot {
			taproot = c.paint(ColorDim, " taproot")
		}
		c.printf("    %s %-16s p2pkh=%-3d p2sh=%-3d hrp=%s%s\n",
			c.paint(ColorCyan, fmt.Sprintf("%-5s", info.Symbol)),
			info.Name, info.Params.P2PKH, info.Params.P2SH, hrp, taproot)
	}
}

// PrintError shows an error. For input that is not Bech32 shaped, the
// offending Base58 characters are listed too.
func (c *Console) PrintError(input string, err error) {
	c.printf("    %s\n", c.paint(ColorRed, "✗ "+err.Error()))

	var decodeErr *address.DecodeError
	if !errors.As(err, &decodeErr) ||
		!errors.Is(decodeErr.Base58, base58check.ErrInvalidCharacter) {

		return
	}
	if !errors.Is(decodeErr.Bech32, witness.ErrInvalidSeparator) &&
		!errors.Is(decodeErr.Bech32, witness.ErrMixedCase) {

		return
	}
	if bad := base58check.InvalidChars(input); len(bad) > 0 {
		c.printf("    %s\n", c.paint(ColorDim,
			"  Invalid Base58 character(s): "+string(bad)+
				" (Not allowed: 0, O, I, l)"))
	}
}

// FormatRate renders the addresses-per-second figure of a run.
func FormatRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber renders a summary counter with thousands separators, so
// that the valid and invalid totals of a large file stay readable.
func FormatNumber(n uint64) string {
	digits := strconv.FormatUint(n, 10)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDuration renders the elapsed time of a validation run. Short runs
// over a handful of addresses show milliseconds; long runs over big files
// drop to minute or hour precision.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d/time.Minute), int(d%time.Minute/time.Second))
	default:
		return fmt.Sprintf("%dh %dm", int(d/time.Hour), int(d%time.Hour/time.Minute))
	}
}
