//go:build linux

package evdevio

import (
	"context"
	"fmt"

	evdev "github.com/holoplot/go-evdev"

	"github.com/keyrx/keyrx/internal/deviceid"
	"github.com/keyrx/keyrx/internal/keycode"
)

// Source wraps one physical evdev keyboard and implements
// processor.EventSource: each Next call blocks on the device's next key
// event and translates it into a keycode.Event stamped with this
// source's device handle.
type Source struct {
	dev    *evdev.InputDevice
	handle keycode.DeviceHandle
	name   string
}

// NewSource takes ownership of dev (an already-open, already-matched
// keyboard from FindKeyboards) and assigns it a fresh opaque handle.
func NewSource(dev *evdev.InputDevice) (*Source, error) {
	name, _ := dev.Name()
	return &Source{dev: dev, handle: deviceid.New(), name: name}, nil
}

// Handle returns the opaque device handle stamped on every event this
// source produces.
func (s *Source) Handle() keycode.DeviceHandle { return s.handle }

// Name returns the device's advertised name, for diagnostics.
func (s *Source) Name() string { return s.name }

// Close releases the underlying evdev file descriptor.
func (s *Source) Close() error { return s.dev.Close() }

// Next blocks until the device reports a key press or release, skipping
// every other event type (EV_SYN, autorepeat, LED sync, etc). It
// returns ctx.Err() if ctx is done before a translatable event arrives.
func (s *Source) Next(ctx context.Context) (keycode.Event, error) {
	for {
		select {
		case <-ctx.Done():
			return keycode.Event{}, ctx.Err()
		default:
		}

		raw, err := s.dev.ReadOne()
		if err != nil {
			return keycode.Event{}, fmt.Errorf("evdevio: read %s: %w", s.name, err)
		}
		if raw.Type != evdev.EV_KEY {
			continue
		}
		// evdev key values: 0 = release, 1 = press, 2 = autorepeat.
		if raw.Value == 2 {
			continue
		}
		key, ok := FromEvdev(raw.Code)
		if !ok {
			continue
		}

		ts := uint64(raw.Time.Sec)*1_000_000 + uint64(raw.Time.Usec)
		if raw.Value == 0 {
			return keycode.NewRelease(key, ts, s.handle), nil
		}
		return keycode.NewPress(key, ts, s.handle), nil
	}
}
