//go:build !linux

// Package evdevio implements the Linux platform I/O adapter. On other
// platforms every entry point reports an unsupported-platform error;
// keyrxd still builds elsewhere so the core and config packages can be
// used standalone (e.g. from keyrxctl validate).
package evdevio

import (
	"context"
	"errors"

	"github.com/keyrx/keyrx/internal/keycode"
)

var errUnsupported = errors.New("evdevio: unsupported on this platform")

// Source is a stub; construction always fails off Linux.
type Source struct{}

func (s *Source) Handle() keycode.DeviceHandle { return "" }
func (s *Source) Name() string                 { return "" }
func (s *Source) Close() error                 { return nil }
func (s *Source) Next(ctx context.Context) (keycode.Event, error) {
	return keycode.Event{}, errUnsupported
}

// VirtualKeyboard is a stub; construction always fails off Linux.
type VirtualKeyboard struct{}

func (v *VirtualKeyboard) Close() error                      { return nil }
func (v *VirtualKeyboard) Emit(events []keycode.Event) error { return errUnsupported }

// FindKeyboards always fails off Linux.
func FindKeyboards(pattern string) ([]*stubDevice, error) {
	return nil, errUnsupported
}

// stubDevice stands in for *evdev.InputDevice so this file can compile
// without importing an evdev package that only works on Linux.
type stubDevice struct{}

// Device stands in for evdevio's linux Device alias.
type Device = stubDevice

// NewSource always fails off Linux.
func NewSource(dev *stubDevice) (*Source, error) { return nil, errUnsupported }

// NewVirtualKeyboard always fails off Linux.
func NewVirtualKeyboard(source *stubDevice, name string) (*VirtualKeyboard, error) {
	return nil, errUnsupported
}
