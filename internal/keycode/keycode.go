// Package keycode defines the closed enumeration of physical and virtual
// keys the core understands, and the Event value type that carries a
// single press or release through the pipeline.
package keycode

import (
	"fmt"
	"strings"
)

// KeyCode is a closed enumeration of keys. Cardinality is bounded and
// fits in 16 bits; equality and ordering are by enum identity.
type KeyCode uint16

// The enumeration below covers letters, digits, function keys F1-F24,
// modifiers, navigation, numpad, media, browser, international, and the
// ISO-102 key. Values are stable for the lifetime of this package; new
// keys are appended, never inserted, so serialized names never shift.
const (
	Unknown KeyCode = iota

	// Letters
	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	// Digits (top row)
	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9

	// Function keys
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	F21
	F22
	F23
	F24

	// Modifiers
	LeftShift
	RightShift
	LeftCtrl
	RightCtrl
	LeftAlt
	RightAlt
	LeftMeta
	RightMeta

	// Whitespace & editing
	Space
	Tab
	Enter
	Backspace
	Escape
	CapsLock
	Minus
	Equal
	LeftBrace
	RightBrace
	Semicolon
	Apostrophe
	Grave
	Backslash
	Comma
	Dot
	Slash

	// Navigation
	Insert
	Delete
	Home
	End
	PageUp
	PageDown
	Up
	Down
	Left
	Right
	PrintScreen
	ScrollLock
	Pause
	Menu

	// Numpad
	NumLock
	KPDivide
	KPMultiply
	KPMinus
	KPPlus
	KPEnter
	KPDot
	KP0
	KP1
	KP2
	KP3
	KP4
	KP5
	KP6
	KP7
	KP8
	KP9

	// Media
	Mute
	VolumeDown
	VolumeUp
	PlayPause
	NextTrack
	PrevTrack
	StopTrack

	// Browser
	BrowserBack
	BrowserForward
	BrowserRefresh
	BrowserHome
	BrowserSearch
	BrowserFavorites

	// International
	ISO102nd
	KatakanaHiragana
	Henkan
	Muhenkan
	Yen
	Ro
	Hangeul
	Hanja

	// keyCount is a sentinel marking the end of the enumeration; it is
	// not itself a valid key.
	keyCount
)

var names = map[KeyCode]string{
	Unknown: "UNKNOWN",

	A: "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G", H: "H", I: "I",
	J: "J", K: "K", L: "L", M: "M", N: "N", O: "O", P: "P", Q: "Q", R: "R",
	S: "S", T: "T", U: "U", V: "V", W: "W", X: "X", Y: "Y", Z: "Z",

	Digit0: "0", Digit1: "1", Digit2: "2", Digit3: "3", Digit4: "4",
	Digit5: "5", Digit6: "6", Digit7: "7", Digit8: "8", Digit9: "9",

	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6", F7: "F7",
	F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12", F13: "F13",
	F14: "F14", F15: "F15", F16: "F16", F17: "F17", F18: "F18", F19: "F19",
	F20: "F20", F21: "F21", F22: "F22", F23: "F23", F24: "F24",

	LeftShift: "LSHIFT", RightShift: "RSHIFT",
	LeftCtrl: "LCTRL", RightCtrl: "RCTRL",
	LeftAlt: "LALT", RightAlt: "RALT",
	LeftMeta: "LMETA", RightMeta: "RMETA",

	Space: "SPACE", Tab: "TAB", Enter: "ENTER", Backspace: "BACKSPACE",
	Escape: "ESC", CapsLock: "CAPSLOCK",
	Minus: "MINUS", Equal: "EQUAL", LeftBrace: "LEFTBRACE",
	RightBrace: "RIGHTBRACE", Semicolon: "SEMICOLON",
	Apostrophe: "APOSTROPHE", Grave: "GRAVE", Backslash: "BACKSLASH",
	Comma: "COMMA", Dot: "DOT", Slash: "SLASH",

	Insert: "INSERT", Delete: "DELETE", Home: "HOME", End: "END",
	PageUp: "PAGEUP", PageDown: "PAGEDOWN", Up: "UP", Down: "DOWN",
	Left: "LEFT", Right: "RIGHT", PrintScreen: "PRINTSCREEN",
	ScrollLock: "SCROLLLOCK", Pause: "PAUSE", Menu: "MENU",

	NumLock: "NUMLOCK", KPDivide: "KP_DIVIDE", KPMultiply: "KP_MULTIPLY",
	KPMinus: "KP_MINUS", KPPlus: "KP_PLUS", KPEnter: "KP_ENTER",
	KPDot: "KP_DOT", KP0: "KP_0", KP1: "KP_1", KP2: "KP_2", KP3: "KP_3",
	KP4: "KP_4", KP5: "KP_5", KP6: "KP_6", KP7: "KP_7", KP8: "KP_8",
	KP9: "KP_9",

	Mute: "MUTE", VolumeDown: "VOLUMEDOWN", VolumeUp: "VOLUMEUP",
	PlayPause: "PLAYPAUSE", NextTrack: "NEXTTRACK", PrevTrack: "PREVTRACK",
	StopTrack: "STOPTRACK",

	BrowserBack: "BROWSER_BACK", BrowserForward: "BROWSER_FORWARD",
	BrowserRefresh: "BROWSER_REFRESH", BrowserHome: "BROWSER_HOME",
	BrowserSearch: "BROWSER_SEARCH", BrowserFavorites: "BROWSER_FAVORITES",

	ISO102nd: "ISO_102ND", KatakanaHiragana: "KATAKANA_HIRAGANA",
	Henkan: "HENKAN", Muhenkan: "MUHENKAN", Yen: "YEN", Ro: "RO",
	Hangeul: "HANGEUL", Hanja: "HANJA",
}

var byName map[string]KeyCode

func init() {
	byName = make(map[string]KeyCode, len(names))
	for k, v := range names {
		byName[v] = k
	}
}

// String returns the stable symbolic name used for serialization.
func (k KeyCode) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("KEYCODE(%d)", uint16(k))
}

// Valid reports whether k is a member of the closed enumeration.
func (k KeyCode) Valid() bool {
	_, ok := names[k]
	return ok
}

// Parse resolves a stable symbolic name (as produced by String) back to
// a KeyCode. Matching ignores case and surrounding whitespace. It
// returns false if name is not a known key.
func Parse(name string) (KeyCode, bool) {
	k, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	return k, ok
}

// Count returns the number of valid KeyCode values, for table sizing.
func Count() int {
	return len(names)
}
