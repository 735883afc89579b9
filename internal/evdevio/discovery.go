//go:build linux

// Package evdevio implements the Linux platform I/O adapter: capturing
// key events from physical keyboards via evdev and re-injecting
// translated events into a uinput virtual keyboard. It is the one
// concrete realization of the contracts spec §6 leaves to the platform
// I/O adapters; Windows (Raw Input/low-level hook/SendInput) and macOS
// (CGEventTap) adapters are out of this repository's scope.
package evdevio

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

// FindKeyboards globs /dev/input/event*, keeps only real keyboards (has
// letter-key capability, no relative-axis capability, same probe as the
// teacher's isKeyboard), and returns those whose name or syspath matches
// pattern. An empty pattern matches every keyboard found. Generalizes
// the teacher's single-device FindKeyboard to the core's requirement of
// safe concurrent handling of multiple physical keyboards.
func FindKeyboards(pattern string) ([]*evdev.InputDevice, error) {
	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("glob /dev/input/event*: %w", err)
	}

	sort.Slice(matches, func(i, j int) bool {
		ni, _ := strconv.Atoi(strings.TrimPrefix(matches[i], "/dev/input/event"))
		nj, _ := strconv.Atoi(strings.TrimPrefix(matches[j], "/dev/input/event"))
		return ni < nj
	})

	var out []*evdev.InputDevice
	for _, path := range matches {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}
		if !isKeyboard(dev) || !matchesPattern(dev, path, pattern) {
			_ = dev.Close()
			continue
		}
		out = append(out, dev)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no keyboard device matching %q found in /dev/input/event*", pattern)
	}
	return out, nil
}

// isKeyboard returns true if dev supports letter keys (KEY_A..KEY_Z)
// and is not a mouse (no EV_REL capability).
func isKeyboard(dev *evdev.InputDevice) bool {
	for _, evType := range dev.CapableTypes() {
		if evType == evdev.EV_REL {
			return false
		}
	}

	keys := dev.CapableEvents(evdev.EV_KEY)
	hasA, hasZ := false, false
	for _, code := range keys {
		if code == 30 { // KEY_A
			hasA = true
		}
		if code == 44 { // KEY_Z
			hasZ = true
		}
	}
	return hasA && hasZ
}

// matchesPattern implements the device-matching pattern referenced by
// rule.DeviceConfig.Pattern as a case-insensitive substring match
// against either the device's advertised name or its syspath. An empty
// pattern or "*" matches everything.
func matchesPattern(dev *evdev.InputDevice, path, pattern string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	name, err := dev.Name()
	if err == nil && strings.Contains(strings.ToLower(name), strings.ToLower(pattern)) {
		return true
	}
	return strings.Contains(strings.ToLower(path), strings.ToLower(pattern))
}
