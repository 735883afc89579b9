package processor

import (
	"testing"

	"github.com/keyrx/keyrx/internal/keycode"
	"github.com/keyrx/keyrx/internal/rule"
	"github.com/keyrx/keyrx/internal/state"
	"github.com/keyrx/keyrx/internal/taphold"
)

func mustSimple(t *testing.T, from, to keycode.KeyCode) rule.BaseKeyMapping {
	t.Helper()
	m, err := rule.NewSimple(from, to)
	if err != nil {
		t.Fatalf("NewSimple: %v", err)
	}
	return m
}

func lookupOf(mappings ...rule.KeyMapping) *rule.Lookup {
	return rule.NewLookup(rule.DeviceConfig{Pattern: "*", Mappings: mappings})
}

func eventsEqual(a, b []keycode.Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Direction != b[i].Direction || a[i].Key != b[i].Key {
			return false
		}
	}
	return true
}

// Scenario 1: Simple{A->B}.
func TestScenario1Simple(t *testing.T) {
	lookup := lookupOf(rule.NewBase(mustSimple(t, keycode.A, keycode.B)))
	st := state.New()
	reg := taphold.NewRegistry(4)

	out1, sig := ProcessEvent(keycode.NewPress(keycode.A, 0, ""), lookup, st, reg, 0)
	if sig != nil {
		t.Fatalf("unexpected signal: %v", sig)
	}
	want1 := []keycode.Event{keycode.NewPress(keycode.B, 0, "")}
	if !eventsEqual(out1, want1) {
		t.Errorf("press: got %v, want %v", out1, want1)
	}

	out2, _ := ProcessEvent(keycode.NewRelease(keycode.A, 1000, ""), lookup, st, reg, 1000)
	want2 := []keycode.Event{keycode.NewRelease(keycode.B, 1000, "")}
	if !eventsEqual(out2, want2) {
		t.Errorf("release: got %v, want %v", out2, want2)
	}
}

// Scenario 2: Modifier{CapsLock->MD_00}, Conditional(ModifierActive(0),[Simple{H->Left}]).
func TestScenario2ConditionalModifier(t *testing.T) {
	capsMod, err := rule.NewModifier(keycode.CapsLock, 0)
	if err != nil {
		t.Fatalf("NewModifier: %v", err)
	}
	hLeft := mustSimple(t, keycode.H, keycode.Left)
	cond := rule.NewConditional(state.Modifier(0), []rule.BaseKeyMapping{hLeft})
	lookup := lookupOf(rule.NewBase(capsMod), cond)
	st := state.New()
	reg := taphold.NewRegistry(4)

	out, _ := ProcessEvent(keycode.NewPress(keycode.CapsLock, 0, ""), lookup, st, reg, 0)
	if len(out) != 0 {
		t.Fatalf("CapsLock press should emit nothing, got %v", out)
	}
	if !st.IsModifierActive(0) {
		t.Fatalf("MD_00 should be active after CapsLock press")
	}

	outH, _ := ProcessEvent(keycode.NewPress(keycode.H, 100, ""), lookup, st, reg, 100)
	want := []keycode.Event{keycode.NewPress(keycode.Left, 100, "")}
	if !eventsEqual(outH, want) {
		t.Fatalf("H press: got %v, want %v", outH, want)
	}

	outHRel, _ := ProcessEvent(keycode.NewRelease(keycode.H, 200, ""), lookup, st, reg, 200)
	wantRel := []keycode.Event{keycode.NewRelease(keycode.Left, 200, "")}
	if !eventsEqual(outHRel, wantRel) {
		t.Fatalf("H release: got %v, want %v", outHRel, wantRel)
	}

	outCapsRel, _ := ProcessEvent(keycode.NewRelease(keycode.CapsLock, 300, ""), lookup, st, reg, 300)
	if len(outCapsRel) != 0 {
		t.Fatalf("CapsLock release should emit nothing, got %v", outCapsRel)
	}
	if st.IsModifierActive(0) {
		t.Fatalf("MD_00 should be clear after CapsLock release")
	}
}

// Scenario 3: Lock{ScrollLock->LK_01}.
func TestScenario3Lock(t *testing.T) {
	lk, err := rule.NewLock(keycode.ScrollLock, 1)
	if err != nil {
		t.Fatalf("NewLock: %v", err)
	}
	lookup := lookupOf(rule.NewBase(lk))
	st := state.New()
	reg := taphold.NewRegistry(4)

	steps := []struct {
		ev       keycode.Event
		wantLock bool
	}{
		{keycode.NewPress(keycode.ScrollLock, 0, ""), true},
		{keycode.NewRelease(keycode.ScrollLock, 50, ""), true},
		{keycode.NewPress(keycode.ScrollLock, 100, ""), false},
		{keycode.NewRelease(keycode.ScrollLock, 150, ""), false},
	}
	for i, step := range steps {
		out, _ := ProcessEvent(step.ev, lookup, st, reg, step.ev.TimestampUs)
		if len(out) != 0 {
			t.Errorf("step %d: expected empty output, got %v", i, out)
		}
		if got := st.IsLockActive(1); got != step.wantLock {
			t.Errorf("step %d: LK_01 = %v, want %v", i, got, step.wantLock)
		}
	}
}

// Scenario 4: TapHold below threshold produces a tap commit.
func TestScenario4TapHoldBelowThreshold(t *testing.T) {
	th, err := rule.NewTapHold(keycode.CapsLock, keycode.Escape, 0, 200_000)
	if err != nil {
		t.Fatalf("NewTapHold: %v", err)
	}
	lookup := lookupOf(rule.NewBase(th))
	st := state.New()
	reg := taphold.NewRegistry(4)

	outPress, _ := ProcessEvent(keycode.NewPress(keycode.CapsLock, 0, ""), lookup, st, reg, 0)
	if len(outPress) != 0 {
		t.Fatalf("tap-hold press should emit nothing yet, got %v", outPress)
	}

	outRel, _ := ProcessEvent(keycode.NewRelease(keycode.CapsLock, 150_000, ""), lookup, st, reg, 150_000)
	want := []keycode.Event{
		keycode.NewPress(keycode.Escape, 150_000, ""),
		keycode.NewRelease(keycode.Escape, 150_000, ""),
	}
	if !eventsEqual(outRel, want) {
		t.Fatalf("got %v, want %v", outRel, want)
	}
	if st.IsModifierActive(0) {
		t.Errorf("hold modifier must remain clear on a tap")
	}
	if reg.Contains(keycode.CapsLock) {
		t.Errorf("registry entry should be removed after resolution")
	}
}

// Scenario 5: TapHold at/over threshold via CheckTimeouts, then release clears.
func TestScenario5TapHoldTimeout(t *testing.T) {
	th, _ := rule.NewTapHold(keycode.CapsLock, keycode.Escape, 0, 200_000)
	lookup := lookupOf(rule.NewBase(th))
	st := state.New()
	reg := taphold.NewRegistry(4)

	ProcessEvent(keycode.NewPress(keycode.CapsLock, 0, ""), lookup, st, reg, 0)

	outTimeout := CheckTimeouts(st, reg, 250_000)
	if len(outTimeout) != 0 {
		t.Errorf("timeout commit should emit nothing, got %v", outTimeout)
	}
	if !st.IsModifierActive(0) {
		t.Fatalf("MD_00 should be set after timeout")
	}

	outRel, _ := ProcessEvent(keycode.NewRelease(keycode.CapsLock, 400_000, ""), lookup, st, reg, 400_000)
	if len(outRel) != 0 {
		t.Errorf("hold release should emit nothing, got %v", outRel)
	}
	if st.IsModifierActive(0) {
		t.Fatalf("MD_00 should be clear after hold release")
	}
}

// Scenario 6: permissive hold fires when another key is pressed while pending.
func TestScenario6PermissiveHold(t *testing.T) {
	th, _ := rule.NewTapHold(keycode.CapsLock, keycode.Escape, 0, 200_000)
	hLeft := mustSimple(t, keycode.H, keycode.Left)
	cond := rule.NewConditional(state.Modifier(0), []rule.BaseKeyMapping{hLeft})
	lookup := lookupOf(rule.NewBase(th), cond)
	st := state.New()
	reg := taphold.NewRegistry(4)

	ProcessEvent(keycode.NewPress(keycode.CapsLock, 0, ""), lookup, st, reg, 0)
	if st.IsModifierActive(0) {
		t.Fatalf("MD_00 must not be set while merely pending")
	}

	outH, _ := ProcessEvent(keycode.NewPress(keycode.H, 50_000, ""), lookup, st, reg, 50_000)
	if !st.IsModifierActive(0) {
		t.Fatalf("permissive hold should have set MD_00 before H's lookup")
	}
	want := []keycode.Event{keycode.NewPress(keycode.Left, 50_000, "")}
	if !eventsEqual(outH, want) {
		t.Fatalf("got %v, want %v (no tap event, permissive resolved to hold)", outH, want)
	}

	outHRel, _ := ProcessEvent(keycode.NewRelease(keycode.H, 60_000, ""), lookup, st, reg, 60_000)
	wantRel := []keycode.Event{keycode.NewRelease(keycode.Left, 60_000, "")}
	if !eventsEqual(outHRel, wantRel) {
		t.Fatalf("got %v, want %v", outHRel, wantRel)
	}

	outCapsRel, _ := ProcessEvent(keycode.NewRelease(keycode.CapsLock, 80_000, ""), lookup, st, reg, 80_000)
	if len(outCapsRel) != 0 {
		t.Errorf("hold release should emit nothing, got %v", outCapsRel)
	}
	if st.IsModifierActive(0) {
		t.Fatalf("MD_00 should clear once CapsLock is released")
	}
}

// Scenario 7: ModifiedOutput{Num1->Num1, shift=true}.
func TestScenario7ModifiedOutput(t *testing.T) {
	mo, err := rule.NewModifiedOutput(keycode.Digit1, keycode.Digit1, true, false, false, false)
	if err != nil {
		t.Fatalf("NewModifiedOutput: %v", err)
	}
	lookup := lookupOf(rule.NewBase(mo))
	st := state.New()
	reg := taphold.NewRegistry(4)

	outPress, _ := ProcessEvent(keycode.NewPress(keycode.Digit1, 0, ""), lookup, st, reg, 0)
	wantPress := []keycode.Event{
		keycode.NewPress(keycode.LeftShift, 0, ""),
		keycode.NewPress(keycode.Digit1, 0, ""),
	}
	if !eventsEqual(outPress, wantPress) {
		t.Fatalf("press: got %v, want %v", outPress, wantPress)
	}

	outRel, _ := ProcessEvent(keycode.NewRelease(keycode.Digit1, 1000, ""), lookup, st, reg, 1000)
	wantRel := []keycode.Event{
		keycode.NewRelease(keycode.Digit1, 1000, ""),
		keycode.NewRelease(keycode.LeftShift, 1000, ""),
	}
	if !eventsEqual(outRel, wantRel) {
		t.Fatalf("release: got %v, want %v", outRel, wantRel)
	}
}

func TestModifiedOutputFullReversibility(t *testing.T) {
	mo, _ := rule.NewModifiedOutput(keycode.A, keycode.B, true, true, true, true)
	lookup := lookupOf(rule.NewBase(mo))
	st := state.New()
	reg := taphold.NewRegistry(4)

	outPress, _ := ProcessEvent(keycode.NewPress(keycode.A, 0, ""), lookup, st, reg, 0)
	wantPress := []keycode.Event{
		keycode.NewPress(keycode.LeftShift, 0, ""),
		keycode.NewPress(keycode.LeftCtrl, 0, ""),
		keycode.NewPress(keycode.LeftAlt, 0, ""),
		keycode.NewPress(keycode.LeftMeta, 0, ""),
		keycode.NewPress(keycode.B, 0, ""),
	}
	if !eventsEqual(outPress, wantPress) {
		t.Fatalf("press: got %v, want %v", outPress, wantPress)
	}

	outRel, _ := ProcessEvent(keycode.NewRelease(keycode.A, 10, ""), lookup, st, reg, 10)
	wantRel := []keycode.Event{
		keycode.NewRelease(keycode.B, 10, ""),
		keycode.NewRelease(keycode.LeftMeta, 10, ""),
		keycode.NewRelease(keycode.LeftAlt, 10, ""),
		keycode.NewRelease(keycode.LeftCtrl, 10, ""),
		keycode.NewRelease(keycode.LeftShift, 10, ""),
	}
	if !eventsEqual(outRel, wantRel) {
		t.Fatalf("release: got %v, want %v", outRel, wantRel)
	}
}

func TestPassThroughWithEmptyConfig(t *testing.T) {
	lookup := lookupOf()
	st := state.New()
	reg := taphold.NewRegistry(4)

	for _, ev := range []keycode.Event{
		keycode.NewPress(keycode.A, 0, ""),
		keycode.NewRelease(keycode.A, 1, ""),
	} {
		out, sig := ProcessEvent(ev, lookup, st, reg, ev.TimestampUs)
		if sig != nil {
			t.Fatalf("unexpected signal: %v", sig)
		}
		if !eventsEqual(out, []keycode.Event{ev}) {
			t.Errorf("got %v, want pass-through %v", out, ev)
		}
	}
}

func TestDeterminism(t *testing.T) {
	th, _ := rule.NewTapHold(keycode.CapsLock, keycode.Escape, 0, 200_000)
	lookup := lookupOf(rule.NewBase(th))

	run := func() ([]keycode.Event, bool) {
		st := state.New()
		reg := taphold.NewRegistry(4)
		ProcessEvent(keycode.NewPress(keycode.CapsLock, 0, ""), lookup, st, reg, 0)
		out, _ := ProcessEvent(keycode.NewRelease(keycode.CapsLock, 150_000, ""), lookup, st, reg, 150_000)
		return out, st.IsModifierActive(0)
	}
	out1, mod1 := run()
	out2, mod2 := run()
	if !eventsEqual(out1, out2) || mod1 != mod2 {
		t.Fatalf("ProcessEvent is not deterministic: (%v,%v) vs (%v,%v)", out1, mod1, out2, mod2)
	}
}

func TestRegistryFullDegradesToPassThrough(t *testing.T) {
	th1, _ := rule.NewTapHold(keycode.A, keycode.Escape, 0, 200_000)
	th2, _ := rule.NewTapHold(keycode.B, keycode.Escape, 1, 200_000)
	lookup := lookupOf(rule.NewBase(th1), rule.NewBase(th2))
	st := state.New()
	reg := taphold.NewRegistry(1)

	out1, sig1 := ProcessEvent(keycode.NewPress(keycode.A, 0, ""), lookup, st, reg, 0)
	if sig1 != nil || len(out1) != 0 {
		t.Fatalf("first tap-hold press should be tracked silently, got out=%v sig=%v", out1, sig1)
	}

	out2, sig2 := ProcessEvent(keycode.NewPress(keycode.B, 0, ""), lookup, st, reg, 0)
	if sig2 == nil {
		t.Fatalf("expected a capacity-exceeded signal on the 2nd tap-hold key")
	}
	if !eventsEqual(out2, []keycode.Event{keycode.NewPress(keycode.B, 0, "")}) {
		t.Fatalf("expected pass-through for the degraded key, got %v", out2)
	}
}

func TestPausedProcessorIsPureForwarding(t *testing.T) {
	th, _ := rule.NewTapHold(keycode.CapsLock, keycode.Escape, 0, 200_000)
	p := New(lookupOf(rule.NewBase(th)), 4)
	p.SetPaused(true)

	out, sig := p.Process(keycode.NewPress(keycode.CapsLock, 0, ""), 0)
	if sig != nil {
		t.Fatalf("paused processing should never signal: %v", sig)
	}
	if !eventsEqual(out, []keycode.Event{keycode.NewPress(keycode.CapsLock, 0, "")}) {
		t.Fatalf("paused processor should pass events through unchanged, got %v", out)
	}
	if p.Registry.Len() != 0 {
		t.Errorf("paused processor must not mutate the tap-hold registry")
	}
}
