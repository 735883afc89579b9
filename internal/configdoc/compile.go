package configdoc

import (
	"strings"

	"github.com/keyrx/keyrx/internal/coreerr"
	"github.com/keyrx/keyrx/internal/keycode"
	"github.com/keyrx/keyrx/internal/rule"
	"github.com/keyrx/keyrx/internal/state"
)

// CompileErrors collects every coreerr.Error found while compiling a
// Document, per spec §7: "errors are collected and returned to the
// loader, which decides whether to abort the daemon or reject the
// config."
type CompileErrors []*coreerr.Error

func (errs CompileErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Compile validates doc against spec §6's load-time rules and converts
// it into the per-device rule.DeviceConfig values the core consumes. It
// returns every validation failure it finds, not just the first.
func Compile(doc *Document) ([]rule.DeviceConfig, error) {
	var errs CompileErrors

	if doc.Version.Major == 0 && doc.Version.Minor == 0 {
		errs = append(errs, coreerr.NewConstraintViolation(
			"config version %d.%d.%d is rejected: major.minor must not both be 0",
			doc.Version.Major, doc.Version.Minor, doc.Version.Patch))
	}

	devices := make([]rule.DeviceConfig, 0, len(doc.Devices))
	for _, dd := range doc.Devices {
		dc, deviceErrs := compileDevice(dd)
		errs = append(errs, deviceErrs...)
		if len(deviceErrs) == 0 {
			devices = append(devices, dc)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return devices, nil
}

func compileDevice(dd DeviceDocument) (rule.DeviceConfig, CompileErrors) {
	var errs CompileErrors

	if dd.Pattern == "" {
		errs = append(errs, coreerr.NewConstraintViolation("device config: pattern must not be empty"))
	}
	if len(dd.Mappings) == 0 {
		errs = append(errs, coreerr.NewConstraintViolation("device config %q: at least one mapping is required", dd.Pattern))
	}

	mappings := make([]rule.KeyMapping, 0, len(dd.Mappings))
	for _, md := range dd.Mappings {
		km, err := compileMapping(md)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		mappings = append(mappings, km)
	}

	return rule.DeviceConfig{Pattern: dd.Pattern, Mappings: mappings}, errs
}

func compileMapping(md MappingDocument) (rule.KeyMapping, *coreerr.Error) {
	base, berr := compileBase(md)
	if berr != nil {
		return rule.KeyMapping{}, berr.(*coreerr.Error)
	}
	if md.Condition == nil {
		return rule.NewBase(base), nil
	}
	cond, err := compileCondition(*md.Condition, 1)
	if err != nil {
		return rule.KeyMapping{}, err
	}
	return rule.NewConditional(cond, []rule.BaseKeyMapping{base}), nil
}

func compileBase(md MappingDocument) (rule.BaseKeyMapping, error) {
	switch md.Type {
	case "simple":
		from, err := resolveKey(md.From)
		if err != nil {
			return rule.BaseKeyMapping{}, err
		}
		to, err := resolveKey(md.To)
		if err != nil {
			return rule.BaseKeyMapping{}, err
		}
		return rule.NewSimple(from, to)

	case "modifier":
		from, err := resolveKey(md.From)
		if err != nil {
			return rule.BaseKeyMapping{}, err
		}
		id, perr := ParseCustomID("MD", md.ModifierID)
		if perr != nil {
			return rule.BaseKeyMapping{}, perr.(*coreerr.Error)
		}
		return rule.NewModifier(from, id)

	case "lock":
		from, err := resolveKey(md.From)
		if err != nil {
			return rule.BaseKeyMapping{}, err
		}
		id, perr := ParseCustomID("LK", md.LockID)
		if perr != nil {
			return rule.BaseKeyMapping{}, perr.(*coreerr.Error)
		}
		return rule.NewLock(from, id)

	case "tap_hold":
		from, err := resolveKey(md.From)
		if err != nil {
			return rule.BaseKeyMapping{}, err
		}
		tap, err := resolveKey(md.Tap)
		if err != nil {
			return rule.BaseKeyMapping{}, err
		}
		id, perr := ParseCustomID("MD", md.HoldModifier)
		if perr != nil {
			return rule.BaseKeyMapping{}, perr.(*coreerr.Error)
		}
		return rule.NewTapHold(from, tap, id, md.ThresholdMs*1000)

	case "modified_output":
		from, err := resolveKey(md.From)
		if err != nil {
			return rule.BaseKeyMapping{}, err
		}
		to, err := resolveKey(md.To)
		if err != nil {
			return rule.BaseKeyMapping{}, err
		}
		return rule.NewModifiedOutput(from, to, md.Shift, md.Ctrl, md.Alt, md.Win)

	default:
		return rule.BaseKeyMapping{}, coreerr.NewConstraintViolation("mapping: unknown type %q", md.Type)
	}
}

func resolveKey(token string) (keycode.KeyCode, *coreerr.Error) {
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(token)), "VK_")
	k, ok := keycode.Parse(name)
	if !ok {
		return 0, coreerr.NewInvalidKey("unknown key %q", token)
	}
	return k, nil
}

func compileCondition(cd ConditionDocument, depth int) (state.Condition, *coreerr.Error) {
	if depth > state.MaxConditionDepth {
		return state.Condition{}, coreerr.NewConstraintViolation("condition nesting exceeds max depth %d", state.MaxConditionDepth)
	}
	switch cd.Kind {
	case "modifier":
		id, err := ParseCustomID("MD", cd.ID)
		if err != nil {
			return state.Condition{}, err.(*coreerr.Error)
		}
		return state.Modifier(id), nil
	case "lock":
		id, err := ParseCustomID("LK", cd.ID)
		if err != nil {
			return state.Condition{}, err.(*coreerr.Error)
		}
		return state.Lock(id), nil
	case "all", "not":
		items := make([]state.Condition, 0, len(cd.Items))
		for _, item := range cd.Items {
			c, err := compileCondition(item, depth+1)
			if err != nil {
				return state.Condition{}, err
			}
			items = append(items, c)
		}
		if cd.Kind == "all" {
			return state.All(items...), nil
		}
		return state.Not(items...), nil
	default:
		return state.Condition{}, coreerr.NewConstraintViolation("condition: unknown kind %q", cd.Kind)
	}
}
