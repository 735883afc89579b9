package processor

import (
	"context"
	"time"

	"github.com/keyrx/keyrx/internal/keycode"
)

// timeoutPollInterval is how often Run checks for timed-out tap-hold
// entries when no new event has arrived in the meantime, mirroring the
// interval the teacher's polling loops use for their own ticks.
const timeoutPollInterval = 5 * time.Millisecond

// srcResult carries one src.Next result across the goroutine boundary
// into Run's select loop.
type srcResult struct {
	ev  keycode.Event
	err error
}

// EventSource is the contract a platform input adapter implements to
// feed one device's events into a Processor. Spec §6: "delivery is
// one-at-a-time; the adapter owns event ordering."
type EventSource interface {
	Next(ctx context.Context) (keycode.Event, error)
}

// Sink is the contract a platform output adapter implements to inject a
// Processor's output sequence into the virtual keyboard the OS
// consumes. Spec §6: "the adapter must preserve order and must not
// interleave output from different devices unless it has its own
// ordering invariants."
type Sink interface {
	Emit(events []keycode.Event) error
}

// Run drives one device end to end: read an event from src, process it,
// emit the result to sink, repeat until ctx is cancelled or src errors.
// onSignal, if non-nil, is called with every non-fatal coreerr.Error the
// processor surfaces (e.g. registry-full degradation) so the caller can
// feed diagnostics counters; the core itself never logs.
//
// Run is the sole owner of p's State and Registry for the lifetime of
// this call (spec §5's per-device single-threaded invariant): it reads
// src.Next off a background goroutine so it can also interleave a
// periodic timeout check on the same goroutine that calls Process,
// rather than leaving timeout resolution to some other caller racing
// against this one. After every Process or CheckTimeouts call it
// republishes p's diagnostics Snapshot.
func Run(ctx context.Context, p *Processor, src EventSource, sink Sink, nowUs func() uint64, onSignal func(error)) error {
	results := make(chan srcResult)
	go func() {
		for {
			ev, err := src.Next(ctx)
			select {
			case results <- srcResult{ev: ev, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(timeoutPollInterval)
	defer ticker.Stop()

	p.PublishSnapshot()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case res := <-results:
			if res.err != nil {
				return res.err
			}
			out, sig := p.Process(res.ev, nowUs())
			if sig != nil && onSignal != nil {
				onSignal(sig)
			}
			p.PublishSnapshot()
			if len(out) > 0 {
				if err := sink.Emit(out); err != nil {
					return err
				}
			}

		case now := <-ticker.C:
			p.CheckTimeouts(uint64(now.UnixMicro()))
			p.PublishSnapshot()
		}
	}
}
