package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/Amr-9/coinaddr/internal/ui"
	"github.com/Amr-9/coinaddr/pkg/batch"
)

type validateCommand struct {
	global *globalOptions

	File        string `long:"file" short:"f" description:"Read addresses from this file, one per line; - means stdin"`
	InvalidOnly bool   `long:"invalid-only" description:"Only print the addresses that fail validation"`
	Summary     bool   `long:"summary" short:"s" description:"Print counters when done"`
}

func newValidateCommand(global *globalOptions) *validateCommand {
	return &validateCommand{global: global}
}

func (x *validateCommand) Register(parser *flags.Parser) error {
	_, err := parser.AddCommand(
		"validate",
		"Validate many addresses concurrently",
		"Validate the addresses given as arguments, or read them one "+
			"per line from --file or stdin. Blank lines and lines "+
			"starting with # are skipped. Results are printed in "+
			"input order; the exit status is 2 if any address is "+
			"invalid",
		x,
	)
	return err
}

func (x *validateCommand) Execute(args []string) error {
	e, err := x.global.setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			e.log.Info("interrupted, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	inputs, readErrs, err := x.inputs(ctx, args)
	if err != nil {
		return err
	}

	v := batch.NewValidator(x.global.Workers, e.log)
	e.log.WithField("workers", v.Workers()).Debug("validation started")

	results, err := v.Start(ctx, e.coin.Params, inputs)
	if err != nil {
		return err
	}

	for r := range results {
		if r.Valid() && x.InvalidOnly {
			continue
		}
		e.console.PrintResult(r)
	}

	if err := <-readErrs; err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stats := v.Stats()
	if x.Summary {
		e.console.PrintSummary(stats)
	}
	if stats.Invalid > 0 {
		return fmt.Errorf("%w: %d of %d addresses", errInvalidInput,
			stats.Invalid, stats.Checked)
	}
	return nil
}

// inputs returns the address source: the arguments if any, otherwise the
// lines of --file or stdin.
func (x *validateCommand) inputs(ctx context.Context,
	args []string) (<-chan string, <-chan error, error) {

	if len(args) > 0 {
		if x.File != "" {
			return nil, nil, fmt.Errorf("cannot use --file together " +
				"with address arguments")
		}

		ch := make(chan string)
		errc := make(chan error)
		go func() {
			defer close(errc)
			defer close(ch)
			for _, arg := range args {
				select {
				case ch <- arg:
				case <-ctx.Done():
					return
				}
			}
		}()
		return ch, errc, nil
	}

	var r io.Reader = x.global.stdin
	if x.File != "" && x.File != "-" {
		f, err := os.Open(x.File)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot read file %s: %w",
				x.File, err)
		}
		// Closed when the command returns.
		go func() {
			<-ctx.Done()
			f.Close()
		}()
		r = f
	}

	lines, errc := ui.StreamLines(ctx, r)
	return lines, errc, nil
}
