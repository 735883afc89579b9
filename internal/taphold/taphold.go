// Package taphold implements the per-pending-key tap-hold state machine
// and its bounded registry: Pending -> Hold (timeout or permissive
// trigger) or Pending -> ResolvedTap (release before threshold).
package taphold

import "github.com/keyrx/keyrx/internal/keycode"

// Phase is one of the three tap-hold states.
type Phase int

const (
	// Pending is the state entered on Press, before resolution.
	Pending Phase = iota
	// Hold means the key has committed to acting as hold_modifier.
	Hold
	// ResolvedTap means the key was released before the threshold and
	// emitted its tap. The processor removes the entry on that release
	// without setting this phase, so no registry entry ever carries it.
	ResolvedTap
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Hold:
		return "hold"
	case ResolvedTap:
		return "resolved_tap"
	default:
		return "unknown"
	}
}

// Config is the tap-hold shape pulled from a rule.BaseKeyMapping: the
// key that produces a tap, the custom modifier bit a hold sets, and the
// threshold in microseconds.
type Config struct {
	Tap          keycode.KeyCode
	HoldModifier uint8
	ThresholdUs  uint64
}

// State is the per-pending-key record tracked by the Registry.
type State struct {
	Key         keycode.KeyCode
	Config      Config
	Phase       Phase
	PressTimeUs uint64
}

// elapsed returns how much time has passed since the key was pressed,
// given the caller-supplied current timestamp.
func (s State) elapsed(nowUs uint64) uint64 {
	if nowUs <= s.PressTimeUs {
		return 0
	}
	return nowUs - s.PressTimeUs
}

// thresholdReached reports whether the elapsed time has reached the
// configured threshold. Comparison is >=, so a sample landing exactly
// on the threshold resolves to Hold (deterministic tie-break).
func (s State) thresholdReached(nowUs uint64) bool {
	return s.elapsed(nowUs) >= s.Config.ThresholdUs
}
