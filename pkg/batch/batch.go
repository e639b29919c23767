// Package batch validates many address strings concurrently while keeping
// results in input order.
package batch

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Amr-9/coinaddr/pkg/address"
)

// Result is the outcome for one input line.
type Result struct {
	Index   int             // Position of the input, starting at 0
	Input   string          // Text as received
	Address address.Address // Parsed address, nil when Err is set
	Type    address.Type    // Output type of Address
	Err     error
}

// Valid reports whether the input parsed.
func (r Result) Valid() bool {
	return r.Err == nil
}

// Stats holds running counters for a validation run.
type Stats struct {
	Checked     uint64  // Inputs processed so far
	Valid       uint64  // Inputs that parsed
	Invalid     uint64  // Inputs that did not
	Rate        float64 // Inputs per second
	ElapsedSecs float64 // Time elapsed since start
}

// Validator fans address parsing out to a pool of goroutines.
type Validator struct {
	valid     atomic.Uint64
	invalid   atomic.Uint64
	startTime atomic.Int64 // unix nanoseconds
	workers   int
	log       logrus.FieldLogger
}

// NewValidator creates a validator. If workers is 0, it defaults to the
// number of CPU cores. A nil logger discards log output.
func NewValidator(workers int, log logrus.FieldLogger) *Validator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Validator{
		workers: workers,
		log:     log,
	}
}

// Workers returns the pool size.
func (v *Validator) Workers() int {
	return v.workers
}

// Stats returns the current counters. Safe to call from any goroutine.
// Checked is always Valid + Invalid of the same snapshot.
func (v *Validator) Stats() Stats {
	valid := v.valid.Load()
	invalid := v.invalid.Load()
	checked := valid + invalid

	var elapsed float64
	if start := v.startTime.Load(); start != 0 {
		elapsed = time.Since(time.Unix(0, start)).Seconds()
	}

	var rate float64
	if elapsed > 0 {
		rate = float64(checked) / elapsed
	}

	return Stats{
		Checked:     checked,
		Valid:       valid,
		Invalid:     invalid,
		Rate:        rate,
		ElapsedSecs: elapsed,
	}
}

type job struct {
	index int
	input string
}

// Start validates every string received on inputs against params. Results
// are delivered in input order and the returned channel is closed once
// inputs is closed and drained, or ctx is cancelled.
func (v *Validator) Start(ctx context.Context, params address.Params,
	inputs <-chan string) (<-chan Result, error) {

	if err := params.Validate(); err != nil {
		return nil, err
	}

	v.startTime.Store(time.Now().UnixNano())
	v.valid.Store(0)
	v.invalid.Store(0)

	jobs := make(chan job, v.workers)
	unordered := make(chan Result, v.workers)
	out := make(chan Result, v.workers)

	// Dispatcher: number the inputs.
	go func() {
		defer close(jobs)

		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-inputs:
				if !ok {
					return
				}
				select {
				case jobs <- job{index: i, input: s}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < v.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.worker(ctx, params, jobs, unordered)
		}()
	}
	go func() {
		wg.Wait()
		close(unordered)
	}()

	go v.reorder(ctx, unordered, out)

	return out, nil
}

func (v *Validator) worker(ctx context.Context, params address.Params,
	jobs <-chan job, results chan<- Result) {

	for j := range jobs {
		r := Result{Index: j.index, Input: j.input}
		r.Address, r.Err = address.Parse(j.input, params)
		if r.Err == nil {
			r.Type = address.TypeOf(r.Address, params)
			v.valid.Add(1)
		} else {
			v.invalid.Add(1)
			v.log.WithFields(logrus.Fields{
				"index": j.index,
				"input": j.input,
			}).WithError(r.Err).Debug("batch: invalid address")
		}

		select {
		case results <- r:
		case <-ctx.Done():
			return
		}
	}
}

// reorder buffers results until the next expected index arrives.
func (v *Validator) reorder(ctx context.Context, in <-chan Result,
	out chan<- Result) {

	defer close(out)

	pending := make(map[int]Result)
	next := 0
	for r := range in {
		pending[r.Index] = r
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			select {
			case out <- r:
			case <-ctx.Done():
				// Keep draining so the workers can exit.
				for range in {
				}
				return
			}
		}
	}

	stats := v.Stats()
	v.log.WithFields(logrus.Fields{
		"checked": stats.Checked,
		"valid":   stats.Valid,
		"elapsed": time.Duration(stats.ElapsedSecs * float64(time.Second)),
	}).Debug("batch: run finished")
}

// Run validates a fixed list and returns one Result per input, in order.
// On cancellation the results gathered so far are returned with ctx.Err().
func (v *Validator) Run(ctx context.Context, params address.Params,
	inputs []string) ([]Result, error) {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan string)
	go func() {
		defer close(in)
		for _, s := range inputs {
			select {
			case in <- s:
			case <-ctx.Done():
				return
			}
		}
	}()

	out, err := v.Start(ctx, params, in)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(inputs))
	for r := range out {
		results = append(results, r)
	}
	if err := ctx.Err(); err != nil && len(results) < len(inputs) {
		return results, err
	}
	return results, nil
}
