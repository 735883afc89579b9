// Package diag exposes runtime counters and a small HTTP surface for
// inspecting a running daemon: what devices are attached, and per-device
// counters for events, degradations and rejections. The core itself
// never reports metrics; diag is wired in at the daemon layer the same
// way the teacher's internal/server exposes process lifecycle outside
// the packages that do the actual work. keyrxd registers one counter set
// per configured device pattern but does not increment any of them, so
// /counters reports zero for every field.
package diag

import (
	"sync"
	"sync/atomic"
)

// DeviceCounters tracks per-device outcome counts, all updated with
// sync/atomic so they're safe to read from the HTTP handler goroutine
// while a device's own goroutine is still processing events.
type DeviceCounters struct {
	Events                 atomic.Uint64
	ConstraintViolations   atomic.Uint64
	CapacityExceeded       atomic.Uint64
	PermissiveHoldTriggers atomic.Uint64
	TapCommits             atomic.Uint64
	HoldCommits            atomic.Uint64
}

// Snapshot is a point-in-time copy of a DeviceCounters, safe to
// marshal to JSON.
type Snapshot struct {
	Events                 uint64 `json:"events"`
	ConstraintViolations   uint64 `json:"constraint_violations"`
	CapacityExceeded       uint64 `json:"capacity_exceeded"`
	PermissiveHoldTriggers uint64 `json:"permissive_hold_triggers"`
	TapCommits             uint64 `json:"tap_commits"`
	HoldCommits            uint64 `json:"hold_commits"`
}

// Snapshot copies c's current values.
func (c *DeviceCounters) Snapshot() Snapshot {
	return Snapshot{
		Events:                 c.Events.Load(),
		ConstraintViolations:   c.ConstraintViolations.Load(),
		CapacityExceeded:       c.CapacityExceeded.Load(),
		PermissiveHoldTriggers: c.PermissiveHoldTriggers.Load(),
		TapCommits:             c.TapCommits.Load(),
		HoldCommits:            c.HoldCommits.Load(),
	}
}

// Registry holds one DeviceCounters per name the caller chooses rather
// than per opaque handle; keyrxd uses each device config's pattern, so
// /counters reads like something an operator typed a config pattern
// against.
type Registry struct {
	mu      sync.Mutex
	devices map[string]*DeviceCounters
}

// NewRegistry returns an empty counters registry.
func NewRegistry() *Registry {
	return &Registry{devices: make(map[string]*DeviceCounters)}
}

// For returns the counters for name, creating them on first use.
func (r *Registry) For(name string) *DeviceCounters {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.devices[name]; ok {
		return c
	}
	c := &DeviceCounters{}
	r.devices[name] = c
	return c
}

// Snapshot copies every device's current counters into a plain map.
func (r *Registry) Snapshot() map[string]Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Snapshot, len(r.devices))
	for name, c := range r.devices {
		out[name] = c.Snapshot()
	}
	return out
}
