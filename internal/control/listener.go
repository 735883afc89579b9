// Package control implements the pause/resume side channel: a global
// hotkey that flips a running daemon's Processor paused flag via
// Processor.SetPaused, without going through the process_event
// pipeline itself.
package control

import "context"

// Listener listens for a single global hotkey's press/release events.
type Listener interface {
	Start(ctx context.Context, onDown func(), onUp func()) error
	Stop()
	KeyName() string
}
