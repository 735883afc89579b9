// Package rule models the mapping variants a device's configuration is
// built from, and the lookup index that turns an input key plus the
// current DeviceState into the applicable mapping.
package rule

import (
	"github.com/keyrx/keyrx/internal/coreerr"
	"github.com/keyrx/keyrx/internal/keycode"
	"github.com/keyrx/keyrx/internal/state"
)

// BaseKind discriminates the BaseKeyMapping sum type.
type BaseKind int

const (
	// Simple translates one key to another, Press to Press and
	// Release to Release.
	Simple BaseKind = iota
	// Modifier sets a custom modifier bit on Press and clears it on
	// Release, emitting no output.
	Modifier
	// Lock toggles a custom lock bit on Press and does nothing on
	// Release, emitting no output.
	Lock
	// TapHold is a dual-role key; see the taphold package for its
	// state machine.
	TapHold
	// ModifiedOutput emits a set of modifier presses, the target key,
	// then reverses the modifiers on release.
	ModifiedOutput
)

// BaseKeyMapping is the closed sum type of non-conditional mappings. The
// active fields depend on Kind; see the constructors below, which are
// the only supported way to build a valid BaseKeyMapping.
type BaseKeyMapping struct {
	Kind BaseKind

	// Simple
	From KeyCode
	To   KeyCode

	// Modifier / Lock / TapHold hold_modifier
	BitID uint8

	// TapHold
	Tap         KeyCode
	ThresholdUs uint64

	// ModifiedOutput
	Shift bool
	Ctrl  bool
	Alt   bool
	Win   bool
}

// KeyCode is a local alias so this package's doc comments read naturally;
// it is identical to keycode.KeyCode.
type KeyCode = keycode.KeyCode

// NewSimple builds a Simple mapping. from must differ from to.
func NewSimple(from, to KeyCode) (BaseKeyMapping, error) {
	if from == to {
		return BaseKeyMapping{}, coreerr.NewConstraintViolation("Simple mapping: from and to must differ (both %s)", from)
	}
	return BaseKeyMapping{Kind: Simple, From: from, To: to}, nil
}

// NewModifier builds a Modifier mapping bound to custom modifier id.
func NewModifier(from KeyCode, id uint8) (BaseKeyMapping, error) {
	if id == 255 {
		return BaseKeyMapping{}, coreerr.NewConstraintViolation("Modifier mapping: id 255 is reserved")
	}
	return BaseKeyMapping{Kind: Modifier, From: from, BitID: id}, nil
}

// NewLock builds a Lock mapping bound to custom lock id.
func NewLock(from KeyCode, id uint8) (BaseKeyMapping, error) {
	if id == 255 {
		return BaseKeyMapping{}, coreerr.NewConstraintViolation("Lock mapping: id 255 is reserved")
	}
	return BaseKeyMapping{Kind: Lock, From: from, BitID: id}, nil
}

// NewTapHold builds a TapHold mapping. threshold must be positive and
// hold_modifier must not be the reserved id 255.
func NewTapHold(from, tap KeyCode, holdModifier uint8, thresholdUs uint64) (BaseKeyMapping, error) {
	if thresholdUs == 0 {
		return BaseKeyMapping{}, coreerr.NewConstraintViolation("TapHold mapping: threshold_ms must be > 0")
	}
	if holdModifier == 255 {
		return BaseKeyMapping{}, coreerr.NewConstraintViolation("TapHold mapping: hold_modifier 255 is reserved")
	}
	return BaseKeyMapping{Kind: TapHold, From: from, Tap: tap, BitID: holdModifier, ThresholdUs: thresholdUs}, nil
}

// NewModifiedOutput builds a ModifiedOutput mapping.
func NewModifiedOutput(from, to KeyCode, shift, ctrl, alt, win bool) (BaseKeyMapping, error) {
	return BaseKeyMapping{Kind: ModifiedOutput, From: from, To: to, Shift: shift, Ctrl: ctrl, Alt: alt, Win: win}, nil
}

// Input returns the KeyCode this mapping is triggered by.
func (m BaseKeyMapping) Input() KeyCode {
	return m.From
}

// KeyMapping is either a bare BaseKeyMapping or a Conditional wrapping
// an inline sub-table of BaseKeyMapping, gated by a Condition.
type KeyMapping struct {
	// Condition is nil for a bare Base mapping.
	Condition *state.Condition
	Base      BaseKeyMapping
	// Mappings holds the inline sub-table when Condition != nil; Base
	// is unused in that case.
	Mappings []BaseKeyMapping
}

// NewBase wraps a BaseKeyMapping as an unconditional KeyMapping.
func NewBase(m BaseKeyMapping) KeyMapping {
	return KeyMapping{Base: m}
}

// NewConditional wraps an inline sub-table behind a Condition.
func NewConditional(cond state.Condition, mappings []BaseKeyMapping) KeyMapping {
	return KeyMapping{Condition: &cond, Mappings: mappings}
}

// IsConditional reports whether m is a gated inline sub-table.
func (m KeyMapping) IsConditional() bool {
	return m.Condition != nil
}
