package rule

import "github.com/keyrx/keyrx/internal/coreerr"

// DeviceConfig pairs a device-matching pattern (opaque to this package;
// interpreted by the out-of-scope device matcher) with an ordered
// sequence of KeyMapping. Order matters: the first rule whose input
// matches the event key and whose condition (if any) holds wins.
type DeviceConfig struct {
	Pattern  string
	Mappings []KeyMapping
}

// Validate checks the §6 load-time invariants: non-empty pattern and at
// least one mapping. Per-mapping invariants are enforced by the rule
// constructors in mapping.go, so a DeviceConfig built exclusively from
// those constructors cannot fail the deeper checks here.
func (d DeviceConfig) Validate() error {
	if d.Pattern == "" {
		return coreerr.NewConstraintViolation("device config: pattern must not be empty")
	}
	if len(d.Mappings) == 0 {
		return coreerr.NewConstraintViolation("device config %q: at least one mapping is required", d.Pattern)
	}
	return nil
}
