//go:build linux

package evdevio

import evdev "github.com/holoplot/go-evdev"

// Device is the concrete evdev device type, re-exported so callers
// outside this package (cmd/keyrxd) can hold a reference without
// importing go-evdev directly.
type Device = evdev.InputDevice
