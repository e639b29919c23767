// Command coinaddr derives, parses and validates Bitcoin-family addresses.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/Amr-9/coinaddr/internal/ui"
	"github.com/Amr-9/coinaddr/pkg/coin"
)

const version = "0.2"

type globalOptions struct {
	Coin     string `long:"coin" short:"c" description:"Coin symbol or name, see the coins command"`
	LogLevel string `long:"loglevel" description:"Logging level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	NoColor  bool   `long:"no-color" description:"Disable colored output"`
	Workers  int    `long:"workers" short:"w" description:"Number of validation workers, 0 for one per CPU core"`

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// env is what every command works with once the global options are known.
type env struct {
	coin    coin.Info
	console *ui.Console
	log     *logrus.Logger
}

// setup resolves the global options. It runs inside Execute, after the
// parser has filled in the flags.
func (g *globalOptions) setup() (*env, error) {
	log := logrus.New()
	log.SetOutput(g.stderr)
	level, err := logrus.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	info, err := coin.Lookup(g.Coin)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"coin":  info.Name,
		"p2pkh": info.Params.P2PKH,
		"p2sh":  info.Params.P2SH,
		"hrp":   info.Params.HRP,
	}).Debug("coin selected")

	return &env{
		coin:    info,
		console: ui.NewConsole(g.stdout, !g.NoColor),
		log:     log,
	}, nil
}

type command interface {
	Register(parser *flags.Parser) error
}

func newParser(opts *globalOptions) (*flags.Parser, error) {
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)

	commands := []command{
		newDeriveCommand(opts),
		newParseCommand(opts),
		newValidateCommand(opts),
		newNormalizeCommand(opts),
		newScriptCommand(opts),
		newKeygenCommand(opts),
		newCoinsCommand(opts),
	}
	for _, c := range commands {
		if err := c.Register(parser); err != nil {
			return nil, err
		}
	}
	return parser, nil
}

func main() {
	cfg, err := newConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := &globalOptions{
		Coin:     cfg.Coin,
		LogLevel: cfg.LogLevel,
		NoColor:  cfg.NoColor,
		Workers:  cfg.Workers,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}

	parser, err := newParser(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err := parser.Parse(); err != nil {
		os.Exit(exitCode(err, os.Stdout, os.Stderr))
	}
}

// exitCode reports err and maps it to the process exit status: 0 for help,
// 2 when inputs were rejected, 1 for everything else.
func exitCode(err error, stdout, stderr io.Writer) int {
	var flagErr *flags.Error
	switch {
	case errors.As(err, &flagErr) && flagErr.Type == flags.ErrHelp:
		fmt.Fprintln(stdout, err)
		return 0

	case errors.Is(err, errInvalidInput):
		// The command already reported every bad input.
		return 2

	default:
		fmt.Fprintf(stderr, "coinaddr v%s: %v\n", version, err)
		return 1
	}
}
