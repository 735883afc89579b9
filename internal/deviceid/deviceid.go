// Package deviceid mints the opaque per-device handles carried on
// keycode.Event. The core never parses a handle's contents; adapters
// use it only to correlate events and diagnostics with a physical
// device.
package deviceid

import (
	"github.com/google/uuid"

	"github.com/keyrx/keyrx/internal/keycode"
)

// New mints a fresh opaque device handle.
func New() keycode.DeviceHandle {
	return keycode.DeviceHandle(uuid.NewString())
}
