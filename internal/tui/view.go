package tui

import (
	"fmt"
	"strconv"
	"strings"
)

func joinUint8(ids []uint8) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ", ")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("keyrx status") + "  " + dimStyle.Render(m.Addr) + "\n\n")

	if m.lastErr != nil {
		b.WriteString(badStyle.Render(fmt.Sprintf("unreachable: %v", m.lastErr)) + "\n")
		b.WriteString(dimStyle.Render("q to quit") + "\n")
		return b.String()
	}

	if len(m.devices) == 0 {
		b.WriteString(dimStyle.Render("no devices attached") + "\n")
	}

	for _, dev := range m.devices {
		badge := okStyle.Render("active")
		if dev.Paused {
			badge = warnStyle.Render("paused")
		}
		header := fmt.Sprintf("%s  %s  %s", nameStyle.Render(dev.Handle), dimStyle.Render(dev.Pattern), badge)

		c := m.counters[dev.Handle]
		body := fmt.Sprintf(
			"events %d   taps %d   holds %d   permissive %d\nconstraint violations %d   capacity exceeded %d",
			c.Events, c.TapCommits, c.HoldCommits, c.PermissiveHoldTriggers,
			c.ConstraintViolations, c.CapacityExceeded,
		)

		modifiers := "none"
		if len(dev.ModifiersActive) > 0 {
			modifiers = joinUint8(dev.ModifiersActive)
		}
		locks := "none"
		if len(dev.LocksActive) > 0 {
			locks = joinUint8(dev.LocksActive)
		}
		pending := "none"
		if len(dev.PendingKeys) > 0 {
			pending = strings.Join(dev.PendingKeys, ", ")
		}
		body += fmt.Sprintf("\nmodifiers [%s]   locks [%s]   pending [%s]", modifiers, locks, pending)

		b.WriteString(panelStyle.Render(header+"\n"+body) + "\n")
	}

	b.WriteString(dimStyle.Render("\nq to quit"))
	return b.String()
}
