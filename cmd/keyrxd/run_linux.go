//go:build linux

package main

import (
	"context"
	"sync"

	evdev "github.com/holoplot/go-evdev"

	"github.com/keyrx/keyrx/internal/control"
	"github.com/keyrx/keyrx/internal/evdevio"
	"github.com/keyrx/keyrx/internal/processor"
)

// runPlatform attaches every evdev keyboard matching each runtime's
// pattern, with one cloned virtual keyboard per attached keyboard, then
// runs processor.Run for each in its own goroutine. Each attached
// keyboard gets its own Processor: the first reuses the runtime built
// for the pattern, later ones get a new runtime sharing its Lookup and
// registry capacity. If a pause key is configured, the first attached
// device also gets a control.Listener that flips every runtime's
// paused flag (via Processor.SetPaused) while the key is held.
func (d *daemon) runPlatform(ctx context.Context, wg *sync.WaitGroup) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pauseListenerStarted := false

	for _, r := range d.runtimes {
		devs, err := evdevio.FindKeyboards(r.pattern)
		if err != nil {
			d.logger.Printf("device %q: %v", r.pattern, err)
			continue
		}

		attached := false
		for _, dev := range devs {
			src, err := evdevio.NewSource(dev)
			if err != nil {
				d.logger.Printf("device %q: create source: %v", r.pattern, err)
				continue
			}

			sink, err := evdevio.NewVirtualKeyboard(dev, "keyrx virtual keyboard")
			if err != nil {
				d.logger.Printf("device %q: create virtual keyboard: %v", r.pattern, err)
				continue
			}

			rt := r
			if attached {
				rt = &deviceRuntime{pattern: r.pattern, proc: processor.New(r.proc.Lookup, r.proc.Registry.Capacity())}
				d.runtimes = append(d.runtimes, rt)
			}
			attached = true
			rt.name = src.Name()

			if d.pauseKey != "" && !pauseListenerStarted {
				if code, ok := keyCodeFromEvdevName(d.pauseKey); ok {
					pauseListenerStarted = true
					listener := control.NewEvdevListener(dev, code, d.pauseKey)
					go d.runPauseListener(ctx, listener)
				} else {
					d.logger.Printf("pause-key %q not recognized, pause hotkey disabled", d.pauseKey)
				}
			}

			wg.Add(1)
			go func(r *deviceRuntime, src *evdevio.Source, sink *evdevio.VirtualKeyboard) {
				defer wg.Done()
				defer src.Close()
				defer sink.Close()

				nowUs := func() uint64 { return uint64(timeNowUnixMicro()) }
				onSignal := func(err error) { d.logger.Printf("device %q: %v", r.name, err) }

				if err := processor.Run(ctx, r.proc, src, sink, nowUs, onSignal); err != nil && ctx.Err() == nil {
					d.logger.Printf("device %q: run exited: %v", r.name, err)
				}
			}(rt, src, sink)
		}
	}
}

// runPauseListener toggles every runtime's paused flag on pause-key
// press and release.
func (d *daemon) runPauseListener(ctx context.Context, listener control.Listener) {
	setPaused := func(paused bool) {
		d.mu.Lock()
		runtimes := make([]*deviceRuntime, len(d.runtimes))
		copy(runtimes, d.runtimes)
		d.mu.Unlock()
		for _, r := range runtimes {
			r.proc.SetPaused(paused)
		}
		d.logger.Printf("pause key %s: paused=%v", listener.KeyName(), paused)
	}
	if err := listener.Start(ctx, func() { setPaused(true) }, func() { setPaused(false) }); err != nil && ctx.Err() == nil {
		d.logger.Printf("pause listener exited: %v", err)
	}
}

// keyCodeFromEvdevName maps an evdev KEY_ name string (e.g.
// "KEY_SCROLLLOCK") to its numeric code via the same table evdevio uses
// for translating event key codes, since a pause key is just another
// key the user happens to bind to a control action rather than a
// mapping.
func keyCodeFromEvdevName(name string) (evdev.EvCode, bool) {
	k, ok := evdevio.KeyCodeFromEvdevName(name)
	if !ok {
		return 0, false
	}
	code, ok := evdevio.ToEvdev(k)
	return code, ok
}
