//go:build darwin || windows

package control

import (
	"context"
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// globalListener wraps golang.design/x/hotkey for the platforms where
// evdev is not available. Registration must happen on the OS main
// thread; callers run it via golang.design/x/mainthread the same way
// the teacher's cmd/palaver entrypoint did for its CGo event tap.
type globalListener struct {
	hk      *hotkey.Hotkey
	keyName string
}

// NewGlobalListener builds a Listener for the given modifier+key combo.
// keyName is used only for display.
func NewGlobalListener(mods []hotkey.Modifier, key hotkey.Key, keyName string) Listener {
	return &globalListener{hk: hotkey.New(mods, key), keyName: keyName}
}

func (l *globalListener) Start(ctx context.Context, onDown func(), onUp func()) error {
	if err := l.hk.Register(); err != nil {
		return fmt.Errorf("control: register hotkey %s: %w", l.keyName, err)
	}
	defer l.hk.Unregister()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.hk.Keydown():
			if onDown != nil {
				onDown()
			}
		case <-l.hk.Keyup():
			if onUp != nil {
				onUp()
			}
		}
	}
}

func (l *globalListener) Stop() {
	_ = l.hk.Unregister()
}

func (l *globalListener) KeyName() string { return l.keyName }

// ParseModifier maps a config token ("ctrl", "shift", "alt" or
// "option", case-insensitive) to a hotkey.Modifier; any other token,
// including "cmd" and "win", is rejected. It mirrors the teacher's modifierMap but
// sourced from the shared golang.design/x/hotkey vocabulary instead of
// a platform-private CGo enum.
func ParseModifier(token string) (hotkey.Modifier, bool) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "CTRL":
		return hotkey.ModCtrl, true
	case "SHIFT":
		return hotkey.ModShift, true
	case "ALT", "OPTION":
		return hotkey.ModOption, true
	default:
		return 0, false
	}
}
