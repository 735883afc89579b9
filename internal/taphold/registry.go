package taphold

import (
	"github.com/keyrx/keyrx/internal/coreerr"
	"github.com/keyrx/keyrx/internal/keycode"
)

// DefaultCapacity is the registry's default fixed capacity.
const DefaultCapacity = 32

// Resolution is one (key, hold_modifier) pair produced when a Pending
// state commits to Hold, either via CheckTimeouts or
// TriggerPermissiveHold. The caller realises the side effect (setting
// the modifier bit); the registry only tracks phase.
type Resolution struct {
	Key          keycode.KeyCode
	HoldModifier uint8
}

// Registry is a fixed-capacity, insertion-ordered container of
// in-flight tap-hold States, indexed by key. Two States with the same
// key cannot coexist. Order is preserved for deterministic timeout scan
// and permissive-hold iteration.
type Registry struct {
	capacity int
	order    []keycode.KeyCode
	states   map[keycode.KeyCode]*State
}

// NewRegistry builds an empty Registry with the given fixed capacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{
		capacity: capacity,
		states:   make(map[keycode.KeyCode]*State, capacity),
	}
}

// Len returns the number of pending/hold entries currently tracked.
func (r *Registry) Len() int {
	return len(r.order)
}

// Capacity returns the registry's fixed capacity.
func (r *Registry) Capacity() int {
	return r.capacity
}

// Contains reports whether key has an in-flight entry.
func (r *Registry) Contains(key keycode.KeyCode) bool {
	_, ok := r.states[key]
	return ok
}

// Get returns the in-flight State for key, if any.
func (r *Registry) Get(key keycode.KeyCode) (*State, bool) {
	s, ok := r.states[key]
	return s, ok
}

// Insert adds a new Pending entry for key. It fails with
// coreerr.CapacityExceeded if the registry is full, and with
// coreerr.ConstraintViolation if key already has an in-flight entry
// (registry uniqueness). On failure the registry is left unchanged.
func (r *Registry) Insert(key keycode.KeyCode, cfg Config, nowUs uint64) (*State, error) {
	if _, exists := r.states[key]; exists {
		return nil, coreerr.NewConstraintViolation("tap-hold key %s already pending", key)
	}
	if len(r.order) >= r.capacity {
		return nil, coreerr.NewCapacityExceeded("pending_key_registry", "registry full at capacity %d", r.capacity)
	}
	s := &State{Key: key, Config: cfg, Phase: Pending, PressTimeUs: nowUs}
	r.states[key] = s
	r.order = append(r.order, key)
	return s, nil
}

// Remove deletes key's in-flight entry, if present, and reports whether
// it was present.
func (r *Registry) Remove(key keycode.KeyCode) bool {
	if _, ok := r.states[key]; !ok {
		return false
	}
	delete(r.states, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties the registry unconditionally. Intended for device
// detach or config reload; the hot path never calls this implicitly.
func (r *Registry) Clear() {
	r.order = nil
	r.states = make(map[keycode.KeyCode]*State, r.capacity)
}

// Keys returns the currently tracked keys in insertion order. Intended
// for diagnostics, not the hot path.
func (r *Registry) Keys() []keycode.KeyCode {
	out := make([]keycode.KeyCode, len(r.order))
	copy(out, r.order)
	return out
}

// CheckTimeouts scans entries in insertion order and promotes any
// Pending state whose elapsed time has reached its threshold to Hold,
// returning one Resolution per promotion in scan order. The scan is
// idempotent: calling it again with no new presses and no time advance
// beyond what was already consumed returns no further resolutions,
// since promoted entries are already Hold.
func (r *Registry) CheckTimeouts(nowUs uint64) []Resolution {
	var out []Resolution
	for _, key := range r.order {
		s := r.states[key]
		if s.Phase != Pending {
			continue
		}
		if s.thresholdReached(nowUs) {
			s.Phase = Hold
			out = append(out, Resolution{Key: s.Key, HoldModifier: s.Config.HoldModifier})
		}
	}
	return out
}

// TriggerPermissiveHold promotes every currently Pending entry to Hold,
// in insertion order, regardless of elapsed time. This realises the
// QMK-style permissive-hold rule: pressing any other key while a
// tap-hold key is Pending commits it to Hold immediately.
func (r *Registry) TriggerPermissiveHold() []Resolution {
	return r.TriggerPermissiveHoldExcept(0, false)
}

// TriggerPermissiveHoldExcept is TriggerPermissiveHold but skips the
// entry for exceptKey when skip is true. §4.5 specifies permissive hold
// fires for "any OTHER key pressed while Pending" — this lets the
// processor exclude a key's own entry from triggering itself.
func (r *Registry) TriggerPermissiveHoldExcept(exceptKey keycode.KeyCode, skip bool) []Resolution {
	var out []Resolution
	for _, key := range r.order {
		if skip && key == exceptKey {
			continue
		}
		s := r.states[key]
		if s.Phase != Pending {
			continue
		}
		s.Phase = Hold
		out = append(out, Resolution{Key: s.Key, HoldModifier: s.Config.HoldModifier})
	}
	return out
}

// HasPending reports whether any entry is still in the Pending phase.
// Used by the processor to decide whether a permissive-hold trigger
// check is even worth performing.
func (r *Registry) HasPending() bool {
	for _, key := range r.order {
		if r.states[key].Phase == Pending {
			return true
		}
	}
	return false
}
