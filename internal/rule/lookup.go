package rule

import "github.com/keyrx/keyrx/internal/state"

// Lookup is the derived, O(1)-by-key index built once from a
// DeviceConfig: KeyCode -> ordered candidate KeyMapping list, in the
// order they appeared in the original configuration.
type Lookup struct {
	byKey map[KeyCode][]KeyMapping
}

// NewLookup builds a Lookup from cfg's mapping sequence. Construction
// preserves per-key order; a conditional mapping is indexed under every
// key its inline sub-table can produce a match for.
func NewLookup(cfg DeviceConfig) *Lookup {
	l := &Lookup{byKey: make(map[KeyCode][]KeyMapping)}
	for _, m := range cfg.Mappings {
		if m.IsConditional() {
			seen := make(map[KeyCode]bool)
			for _, base := range m.Mappings {
				key := base.Input()
				if seen[key] {
					continue
				}
				seen[key] = true
				l.byKey[key] = append(l.byKey[key], m)
			}
			continue
		}
		key := m.Base.Input()
		l.byKey[key] = append(l.byKey[key], m)
	}
	return l
}

// FindMapping returns the first candidate for eventKey whose condition
// (if any) holds under state s, preferring earlier entries in
// configuration order. It returns (mapping, true) on a match, or the
// zero value and false for a pass-through.
func (l *Lookup) FindMapping(eventKey KeyCode, s *state.DeviceState) (BaseKeyMapping, bool) {
	for _, candidate := range l.byKey[eventKey] {
		if !candidate.IsConditional() {
			if candidate.Base.Input() == eventKey {
				return candidate.Base, true
			}
			continue
		}
		if !candidate.Condition.Evaluate(s) {
			continue
		}
		for _, base := range candidate.Mappings {
			if base.Input() == eventKey {
				return base, true
			}
		}
	}
	return BaseKeyMapping{}, false
}
