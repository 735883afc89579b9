//go:build linux

package evdevio

import (
	"fmt"

	evdev "github.com/holoplot/go-evdev"

	"github.com/keyrx/keyrx/internal/keycode"
)

// VirtualKeyboard is a uinput device cloned from a physical keyboard's
// capabilities. Its key set is exactly the source device's; keys the
// source does not advertise are not added. It implements processor.Sink.
type VirtualKeyboard struct {
	dev *evdev.InputDevice
}

// NewVirtualKeyboard clones source's capabilities (so the resulting
// device looks enough like a keyboard to desktop environments) and
// registers it with the kernel via uinput. The EV_KEY capability set is
// copied from source unchanged.
func NewVirtualKeyboard(source *evdev.InputDevice, name string) (*VirtualKeyboard, error) {
	dev, err := evdev.CloneDevice(name, source)
	if err != nil {
		return nil, fmt.Errorf("evdevio: clone virtual keyboard: %w", err)
	}
	return &VirtualKeyboard{dev: dev}, nil
}

// Close tears down the uinput device.
func (v *VirtualKeyboard) Close() error { return v.dev.Close() }

// Emit writes events to the virtual keyboard in order, followed by a
// single EV_SYN report. Spec §6 requires the adapter to preserve the
// core's output ordering; a batch is flushed as one coherent report.
func (v *VirtualKeyboard) Emit(events []keycode.Event) error {
	for _, ev := range events {
		code, ok := ToEvdev(ev.Key)
		if !ok {
			continue
		}
		value := int32(0)
		if ev.IsPress() {
			value = 1
		}
		if err := v.dev.WriteOne(&evdev.InputEvent{
			Type:  evdev.EV_KEY,
			Code:  code,
			Value: value,
		}); err != nil {
			return fmt.Errorf("evdevio: write key event: %w", err)
		}
	}
	if err := v.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_SYN, Code: 0, Value: 0}); err != nil {
		return fmt.Errorf("evdevio: write sync: %w", err)
	}
	return nil
}
