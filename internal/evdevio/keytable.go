package evdevio

import (
	"strings"

	evdev "github.com/holoplot/go-evdev"

	"github.com/keyrx/keyrx/internal/keycode"
)

// evdevCodes is the bidirectional table between keycode.KeyCode and the
// kernel's evdev.EvCode space, generalized from the teacher's
// single-purpose hotkey name table (hotkey_linux.go's keyNameMap) to
// cover the full enumeration spec §3 requires.
var evdevCodes = map[keycode.KeyCode]evdev.EvCode{
	keycode.Escape: 1,
	keycode.Digit1: 2, keycode.Digit2: 3, keycode.Digit3: 4, keycode.Digit4: 5,
	keycode.Digit5: 6, keycode.Digit6: 7, keycode.Digit7: 8, keycode.Digit8: 9,
	keycode.Digit9: 10, keycode.Digit0: 11,
	keycode.Minus: 12, keycode.Equal: 13, keycode.Backspace: 14, keycode.Tab: 15,
	keycode.Q: 16, keycode.W: 17, keycode.E: 18, keycode.R: 19, keycode.T: 20,
	keycode.Y: 21, keycode.U: 22, keycode.I: 23, keycode.O: 24, keycode.P: 25,
	keycode.LeftBrace: 26, keycode.RightBrace: 27, keycode.Enter: 28,
	keycode.LeftCtrl: 29,
	keycode.A: 30, keycode.S: 31, keycode.D: 32, keycode.F: 33, keycode.G: 34,
	keycode.H: 35, keycode.J: 36, keycode.K: 37, keycode.L: 38,
	keycode.Semicolon: 39, keycode.Apostrophe: 40, keycode.Grave: 41,
	keycode.LeftShift: 42, keycode.Backslash: 43,
	keycode.Z: 44, keycode.X: 45, keycode.C: 46, keycode.V: 47, keycode.B: 48,
	keycode.N: 49, keycode.M: 50, keycode.Comma: 51, keycode.Dot: 52,
	keycode.Slash: 53, keycode.RightShift: 54, keycode.KPMultiply: 55,
	keycode.LeftAlt: 56, keycode.Space: 57, keycode.CapsLock: 58,
	keycode.F1: 59, keycode.F2: 60, keycode.F3: 61, keycode.F4: 62,
	keycode.F5: 63, keycode.F6: 64, keycode.F7: 65, keycode.F8: 66,
	keycode.F9: 67, keycode.F10: 68, keycode.NumLock: 69, keycode.ScrollLock: 70,
	keycode.KP7: 71, keycode.KP8: 72, keycode.KP9: 73, keycode.KPMinus: 74,
	keycode.KP4: 75, keycode.KP5: 76, keycode.KP6: 77, keycode.KPPlus: 78,
	keycode.KP1: 79, keycode.KP2: 80, keycode.KP3: 81, keycode.KP0: 82,
	keycode.KPDot: 83,
	keycode.ISO102nd: 86, keycode.F11: 87, keycode.F12: 88,
	keycode.Ro: 89, keycode.KatakanaHiragana: 93, keycode.Henkan: 92,
	keycode.Muhenkan: 94, keycode.KPEnter: 96, keycode.RightCtrl: 97,
	keycode.KPDivide: 98, keycode.RightAlt: 100,
	keycode.Home: 102, keycode.Up: 103, keycode.PageUp: 104, keycode.Left: 105,
	keycode.Right: 106, keycode.End: 107, keycode.Down: 108, keycode.PageDown: 109,
	keycode.Insert: 110, keycode.Delete: 111,
	keycode.Mute: 113, keycode.VolumeDown: 114, keycode.VolumeUp: 115,
	keycode.Pause: 119, keycode.Hanja: 123, keycode.Yen: 124,
	keycode.LeftMeta: 125, keycode.RightMeta: 126, keycode.Menu: 127,
	keycode.BrowserBack: 158, keycode.BrowserForward: 159,
	keycode.PrevTrack: 165, keycode.StopTrack: 166, keycode.PlayPause: 164,
	keycode.NextTrack: 163,
	keycode.BrowserFavorites: 156, keycode.BrowserHome: 172,
	keycode.BrowserRefresh: 173, keycode.BrowserSearch: 217,
	keycode.Hangeul: 122,
	keycode.F13: 183, keycode.F14: 184, keycode.F15: 185, keycode.F16: 186,
	keycode.F17: 187, keycode.F18: 188, keycode.F19: 189, keycode.F20: 190,
	keycode.F21: 191, keycode.F22: 192, keycode.F23: 193, keycode.F24: 194,
	keycode.PrintScreen: 210,
}

var keycodeByEvdev map[evdev.EvCode]keycode.KeyCode

func init() {
	keycodeByEvdev = make(map[evdev.EvCode]keycode.KeyCode, len(evdevCodes))
	for k, v := range evdevCodes {
		keycodeByEvdev[v] = k
	}
}

// ToEvdev translates a keycode.KeyCode to its evdev.EvCode. The bool is
// false if k has no evdev representation.
func ToEvdev(k keycode.KeyCode) (evdev.EvCode, bool) {
	code, ok := evdevCodes[k]
	return code, ok
}

// FromEvdev translates an evdev.EvCode to its keycode.KeyCode. The bool
// is false if code is not one of the keys this table knows about.
func FromEvdev(code evdev.EvCode) (keycode.KeyCode, bool) {
	k, ok := keycodeByEvdev[code]
	return k, ok
}

// KeyCodeFromEvdevName maps an evdev "KEY_xxx" name string (as used in
// config for things like a pause hotkey) to a keycode.KeyCode, by
// stripping the KEY_ prefix and delegating to keycode.Parse.
func KeyCodeFromEvdevName(name string) (keycode.KeyCode, bool) {
	trimmed := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(name)), "KEY_")
	return keycode.Parse(trimmed)
}

// allEvdevCodes returns every evdev code this table can translate.
// NewVirtualKeyboard does not use it; the virtual keyboard's capability
// set comes from the cloned source device.
func allEvdevCodes() []evdev.EvCode {
	out := make([]evdev.EvCode, 0, len(keycodeByEvdev))
	for code := range keycodeByEvdev {
		out = append(out, code)
	}
	return out
}
