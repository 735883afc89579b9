// Package processor implements the per-device event processor that
// drives the rule lookup, device state, and tap-hold registry for each
// input event and produces a sequence of output events.
package processor

import (
	"sync/atomic"

	"github.com/keyrx/keyrx/internal/coreerr"
	"github.com/keyrx/keyrx/internal/keycode"
	"github.com/keyrx/keyrx/internal/rule"
	"github.com/keyrx/keyrx/internal/state"
	"github.com/keyrx/keyrx/internal/taphold"
)

// ProcessEvent is the core's pure synchronous contract: given one input
// event, the device's rule lookup, mutable device state, and mutable
// tap-hold registry, it returns the output event sequence and mutates
// state/registry in place. It never blocks and never panics; the only
// failure it can report is a non-fatal signal (registry-full
// degradation), which never prevents an output from being produced.
//
// Step order follows spec §4.4 exactly: permissive pre-resolution,
// then tap-hold ingress (Press) or egress (Release), then the standard
// mapping table. For equal (event, lookup, state, registry, now_us)
// this returns equal output and leaves equal resulting state/registry
// (determinism, spec §8 property 4).
func ProcessEvent(ev keycode.Event, lookup *rule.Lookup, st *state.DeviceState, reg *taphold.Registry, nowUs uint64) ([]keycode.Event, *coreerr.Error) {
	var out []keycode.Event

	// Step 1: tap-hold pre-resolution (permissive hold). Custom
	// modifiers have no direct OS key representation, so committing a
	// pending key to Hold here sets the state bit but emits no output
	// event; it only changes what step 2's lookup will observe for
	// conditional mappings gated on that modifier.
	if ev.IsPress() && reg.HasPending() {
		for _, res := range reg.TriggerPermissiveHoldExcept(ev.Key, true) {
			st.SetModifier(res.HoldModifier)
		}
	}

	// Step 2: tap-hold ingress.
	if ev.IsPress() {
		if mapping, ok := lookup.FindMapping(ev.Key, st); ok && mapping.Kind == rule.TapHold {
			if reg.Contains(ev.Key) {
				// Already mid dual-role resolution; ignore the
				// spurious repeat press rather than double-counting it.
				return out, nil
			}
			cfg := taphold.Config{Tap: mapping.Tap, HoldModifier: mapping.BitID, ThresholdUs: mapping.ThresholdUs}
			if _, err := reg.Insert(ev.Key, cfg, nowUs); err != nil {
				// Registry full: degrade this key to pass-through and
				// surface a non-fatal resource-limit signal.
				out = append(out, ev)
				cerr, _ := err.(*coreerr.Error)
				return out, cerr
			}
			return out, nil
		}
	}

	// Step 3: tap-hold egress.
	if ev.IsRelease() {
		if s, ok := reg.Get(ev.Key); ok {
			switch s.Phase {
			case taphold.Pending:
				out = append(out,
					keycode.NewPress(s.Config.Tap, ev.TimestampUs, ev.Device),
					keycode.NewRelease(s.Config.Tap, ev.TimestampUs, ev.Device),
				)
			case taphold.Hold:
				st.ClearModifier(s.Config.HoldModifier)
			}
			reg.Remove(ev.Key)
			return out, nil
		}
	}

	// Step 4: standard mapping, or pass-through if nothing matches.
	mapping, ok := lookup.FindMapping(ev.Key, st)
	if !ok {
		out = append(out, ev)
		return out, nil
	}
	out = append(out, applyBaseMapping(mapping, ev, st)...)
	return out, nil
}

// CheckTimeouts realises the timeout side of §4.5: it promotes any
// Pending entry whose elapsed time has reached its threshold to Hold,
// setting the corresponding modifier bit, and returns the (now-stale)
// output contract of an empty event slice, since Hold commits never
// emit output events. Run invokes this (via Processor.CheckTimeouts) on
// its periodic tick, not after each input event.
func CheckTimeouts(st *state.DeviceState, reg *taphold.Registry, nowUs uint64) []keycode.Event {
	for _, res := range reg.CheckTimeouts(nowUs) {
		st.SetModifier(res.HoldModifier)
	}
	return nil
}

// Processor is a stateful convenience wrapper around one device's
// Lookup, DeviceState, and Registry, plus an operational paused flag
// that collaborators (the control-hotkey listener, §12 of the expanded
// spec) can toggle. Pausing lives here, outside ProcessEvent's pure
// contract, because spec §5 guarantees there are no suspension points
// inside the core itself.
//
// Only one goroutine may ever call Process/CheckTimeouts on a given
// Processor at a time (spec §5: per-device single-threaded ownership);
// State and Registry are not otherwise synchronized. paused and
// snapshot are the two fields a second goroutine (a pause listener, a
// diagnostics HTTP handler) is allowed to touch concurrently, so they
// are atomics rather than plain fields.
type Processor struct {
	Lookup   *rule.Lookup
	State    *state.DeviceState
	Registry *taphold.Registry

	paused   atomic.Bool
	snapshot atomic.Pointer[Snapshot]
}

// Snapshot is a point-in-time, immutable copy of the diagnostically
// interesting parts of a Processor's state, safe to read from any
// goroutine. The owning device goroutine publishes a fresh Snapshot
// after every Process/CheckTimeouts call; readers never touch State or
// Registry directly.
type Snapshot struct {
	ModifiersActive []uint8
	LocksActive     []uint8
	PendingKeys     []keycode.KeyCode
}

// New builds a Processor for one device from its compiled lookup and a
// registry of the given capacity (0 selects taphold.DefaultCapacity).
func New(lookup *rule.Lookup, registryCapacity int) *Processor {
	p := &Processor{
		Lookup:   lookup,
		State:    state.New(),
		Registry: taphold.NewRegistry(registryCapacity),
	}
	p.snapshot.Store(&Snapshot{})
	return p
}

// SetPaused sets the operational pause flag. Safe to call from any
// goroutine.
func (p *Processor) SetPaused(paused bool) {
	p.paused.Store(paused)
}

// IsPaused reports the operational pause flag. Safe to call from any
// goroutine.
func (p *Processor) IsPaused() bool {
	return p.paused.Load()
}

// Snapshot returns the most recently published Snapshot. Safe to call
// from any goroutine, including while the owning goroutine is mid-call
// to Process or CheckTimeouts.
func (p *Processor) Snapshot() Snapshot {
	if s := p.snapshot.Load(); s != nil {
		return *s
	}
	return Snapshot{}
}

// PublishSnapshot recomputes and stores a fresh Snapshot from the
// Processor's current State and Registry. PendingKeys lists only
// entries still in the Pending phase, in insertion order; keys already
// committed to Hold show up through ModifiersActive. Must only be called by the
// goroutine that owns this device's Process/CheckTimeouts calls.
func (p *Processor) PublishSnapshot() {
	var pending []keycode.KeyCode
	for _, k := range p.Registry.Keys() {
		if s, ok := p.Registry.Get(k); ok && s.Phase == taphold.Pending {
			pending = append(pending, k)
		}
	}
	p.snapshot.Store(&Snapshot{
		ModifiersActive: p.State.ActiveModifiers(),
		LocksActive:     p.State.ActiveLocks(),
		PendingKeys:     pending,
	})
}

// Process runs one event through ProcessEvent, unless the processor is
// paused, in which case the event is forwarded unchanged with no state
// mutation at all.
func (p *Processor) Process(ev keycode.Event, nowUs uint64) ([]keycode.Event, *coreerr.Error) {
	if p.IsPaused() {
		return []keycode.Event{ev}, nil
	}
	return ProcessEvent(ev, p.Lookup, p.State, p.Registry, nowUs)
}

// CheckTimeouts runs the periodic timeout scan for this device.
func (p *Processor) CheckTimeouts(nowUs uint64) []keycode.Event {
	if p.IsPaused() {
		return nil
	}
	return CheckTimeouts(p.State, p.Registry, nowUs)
}
