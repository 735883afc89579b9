package processor

import (
	"github.com/keyrx/keyrx/internal/keycode"
	"github.com/keyrx/keyrx/internal/rule"
	"github.com/keyrx/keyrx/internal/state"
)

// canonicalModifiers is the fixed Press order for ModifiedOutput, so any
// OS layer interpreting the virtual keyboard observes a deterministic
// sequence. Release order is the exact reverse.
var canonicalModifiers = []struct {
	key     keycode.KeyCode
	wanted  func(m rule.BaseKeyMapping) bool
}{
	{keycode.LeftShift, func(m rule.BaseKeyMapping) bool { return m.Shift }},
	{keycode.LeftCtrl, func(m rule.BaseKeyMapping) bool { return m.Ctrl }},
	{keycode.LeftAlt, func(m rule.BaseKeyMapping) bool { return m.Alt }},
	{keycode.LeftMeta, func(m rule.BaseKeyMapping) bool { return m.Win }},
}

// applyBaseMapping realises the §4.3 output-generation table for a
// matched BaseKeyMapping against one input event, mutating st as
// specified and returning the output sequence.
func applyBaseMapping(m rule.BaseKeyMapping, ev keycode.Event, st *state.DeviceState) []keycode.Event {
	switch m.Kind {
	case rule.Simple:
		if ev.IsPress() {
			return []keycode.Event{keycode.NewPress(m.To, ev.TimestampUs, ev.Device)}
		}
		return []keycode.Event{keycode.NewRelease(m.To, ev.TimestampUs, ev.Device)}

	case rule.Modifier:
		if ev.IsPress() {
			st.SetModifier(m.BitID)
		} else {
			st.ClearModifier(m.BitID)
		}
		return nil

	case rule.Lock:
		if ev.IsPress() {
			st.ToggleLock(m.BitID)
		}
		return nil

	case rule.ModifiedOutput:
		if ev.IsPress() {
			var out []keycode.Event
			for _, mod := range canonicalModifiers {
				if mod.wanted(m) {
					out = append(out, keycode.NewPress(mod.key, ev.TimestampUs, ev.Device))
				}
			}
			out = append(out, keycode.NewPress(m.To, ev.TimestampUs, ev.Device))
			return out
		}
		out := []keycode.Event{keycode.NewRelease(m.To, ev.TimestampUs, ev.Device)}
		for i := len(canonicalModifiers) - 1; i >= 0; i-- {
			mod := canonicalModifiers[i]
			if mod.wanted(m) {
				out = append(out, keycode.NewRelease(mod.key, ev.TimestampUs, ev.Device))
			}
		}
		return out

	case rule.TapHold:
		// Reached only when the tap-hold ingress step (processor.go)
		// could not track this key (e.g. the pending registry was full
		// at Press time). Degrade to pass-through symmetrically for
		// both Press and Release so the key never gets stuck.
		return []keycode.Event{ev}

	default:
		return []keycode.Event{ev}
	}
}
