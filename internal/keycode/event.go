package keycode

// Direction tags whether an Event is a press or a release.
type Direction uint8

const (
	// Press indicates the key went down.
	Press Direction = iota
	// Release indicates the key went up.
	Release
)

func (d Direction) String() string {
	if d == Press {
		return "press"
	}
	return "release"
}

// DeviceHandle is an opaque identifier for the physical device an Event
// originated from. The core never interprets its contents; it exists so
// adapters can correlate events with devices without the core knowing
// about device discovery.
type DeviceHandle string

// Event is the atomic unit that flows through the pipeline: a tagged
// Press or Release of a KeyCode, optionally stamped with a monotonic
// timestamp and the device it came from.
type Event struct {
	Direction   Direction
	Key         KeyCode
	TimestampUs uint64
	Device      DeviceHandle
}

// NewPress builds a Press event for key at the given monotonic timestamp.
func NewPress(key KeyCode, timestampUs uint64, device DeviceHandle) Event {
	return Event{Direction: Press, Key: key, TimestampUs: timestampUs, Device: device}
}

// NewRelease builds a Release event for key at the given monotonic timestamp.
func NewRelease(key KeyCode, timestampUs uint64, device DeviceHandle) Event {
	return Event{Direction: Release, Key: key, TimestampUs: timestampUs, Device: device}
}

// IsPress reports whether the event is a Press.
func (e Event) IsPress() bool { return e.Direction == Press }

// IsRelease reports whether the event is a Release.
func (e Event) IsRelease() bool { return e.Direction == Release }

// WithKey returns a copy of e with its key replaced, preserving
// direction, timestamp, and device. Used by output generation to
// translate an input event's key into an output key.
func (e Event) WithKey(key KeyCode) Event {
	e.Key = key
	return e
}
