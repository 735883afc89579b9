package taphold

import (
	"testing"

	"github.com/keyrx/keyrx/internal/keycode"
)

func cfg() Config {
	return Config{Tap: keycode.Escape, HoldModifier: 0, ThresholdUs: 200_000}
}

func TestInsertAndGet(t *testing.T) {
	r := NewRegistry(4)
	s, err := r.Insert(keycode.CapsLock, cfg(), 0)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if s.Phase != Pending {
		t.Errorf("new entry should be Pending, got %s", s.Phase)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	got, ok := r.Get(keycode.CapsLock)
	if !ok || got != s {
		t.Errorf("Get did not return the inserted state")
	}
}

func TestDuplicateKeyRejected(t *testing.T) {
	r := NewRegistry(4)
	if _, err := r.Insert(keycode.CapsLock, cfg(), 0); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := r.Insert(keycode.CapsLock, cfg(), 100); err == nil {
		t.Fatalf("expected duplicate key insert to fail")
	}
	if r.Len() != 1 {
		t.Errorf("failed insert must not change Len(), got %d", r.Len())
	}
}

func TestCapacityRespected(t *testing.T) {
	r := NewRegistry(2)
	keys := []keycode.KeyCode{keycode.A, keycode.B, keycode.C}
	for i, k := range keys[:2] {
		if _, err := r.Insert(k, cfg(), uint64(i)); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if _, err := r.Insert(keys[2], cfg(), 2); err == nil {
		t.Fatalf("expected capacity-exceeded error on 3rd insert")
	}
	if r.Len() != 2 {
		t.Errorf("failed insert must leave registry unchanged, Len()=%d", r.Len())
	}
}

func TestRemove(t *testing.T) {
	r := NewRegistry(4)
	r.Insert(keycode.A, cfg(), 0)
	if !r.Remove(keycode.A) {
		t.Fatalf("expected Remove to report present")
	}
	if r.Contains(keycode.A) {
		t.Errorf("key should no longer be present")
	}
	if r.Remove(keycode.A) {
		t.Errorf("second Remove should report absent")
	}
}

func TestCheckTimeoutsPromotesAndIsIdempotent(t *testing.T) {
	r := NewRegistry(4)
	r.Insert(keycode.CapsLock, cfg(), 0)

	first := r.CheckTimeouts(250_000)
	if len(first) != 1 || first[0].Key != keycode.CapsLock || first[0].HoldModifier != 0 {
		t.Fatalf("expected one resolution, got %+v", first)
	}
	s, _ := r.Get(keycode.CapsLock)
	if s.Phase != Hold {
		t.Errorf("expected Hold after timeout, got %s", s.Phase)
	}

	second := r.CheckTimeouts(300_000)
	if len(second) != 0 {
		t.Errorf("second scan should be empty, got %+v", second)
	}
}

func TestCheckTimeoutsBelowThresholdDoesNothing(t *testing.T) {
	r := NewRegistry(4)
	r.Insert(keycode.CapsLock, cfg(), 0)
	res := r.CheckTimeouts(100_000)
	if len(res) != 0 {
		t.Fatalf("expected no resolutions below threshold, got %+v", res)
	}
	s, _ := r.Get(keycode.CapsLock)
	if s.Phase != Pending {
		t.Errorf("expected still Pending, got %s", s.Phase)
	}
}

func TestCheckTimeoutsAtExactThresholdResolvesHold(t *testing.T) {
	r := NewRegistry(4)
	r.Insert(keycode.CapsLock, cfg(), 0)
	res := r.CheckTimeouts(200_000)
	if len(res) != 1 {
		t.Fatalf("expected resolution exactly at threshold (>=), got %+v", res)
	}
}

func TestCheckTimeoutsOrderedByInsertion(t *testing.T) {
	r := NewRegistry(4)
	r.Insert(keycode.A, cfg(), 0)
	r.Insert(keycode.B, cfg(), 0)
	res := r.CheckTimeouts(200_000)
	if len(res) != 2 {
		t.Fatalf("expected two resolutions, got %+v", res)
	}
	if res[0].Key != keycode.A || res[1].Key != keycode.B {
		t.Errorf("expected insertion order A,B; got %+v", res)
	}
}

func TestTriggerPermissiveHold(t *testing.T) {
	r := NewRegistry(4)
	r.Insert(keycode.CapsLock, cfg(), 0)
	res := r.TriggerPermissiveHold()
	if len(res) != 1 || res[0].Key != keycode.CapsLock {
		t.Fatalf("expected permissive resolution, got %+v", res)
	}
	s, _ := r.Get(keycode.CapsLock)
	if s.Phase != Hold {
		t.Errorf("expected Hold after permissive trigger, got %s", s.Phase)
	}

	// Triggering again with no Pending entries is a no-op.
	if res2 := r.TriggerPermissiveHold(); len(res2) != 0 {
		t.Errorf("expected no resolutions once nothing is Pending, got %+v", res2)
	}
}

func TestHasPending(t *testing.T) {
	r := NewRegistry(4)
	if r.HasPending() {
		t.Errorf("empty registry should report no pending entries")
	}
	r.Insert(keycode.A, cfg(), 0)
	if !r.HasPending() {
		t.Errorf("expected a pending entry")
	}
	r.TriggerPermissiveHold()
	if r.HasPending() {
		t.Errorf("expected no pending entries once resolved to Hold")
	}
}

func TestClear(t *testing.T) {
	r := NewRegistry(4)
	r.Insert(keycode.A, cfg(), 0)
	r.Insert(keycode.B, cfg(), 0)
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("expected empty registry after Clear, Len()=%d", r.Len())
	}
	if _, err := r.Insert(keycode.A, cfg(), 0); err != nil {
		t.Errorf("should be able to reinsert after Clear: %v", err)
	}
}
