//go:build linux

package main

// entrypoint runs fn directly; evdev has no main-thread requirement.
func entrypoint(fn func()) {
	fn()
}
