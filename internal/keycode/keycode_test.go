package keycode

import "testing"

func TestParseAndString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    KeyCode
		wantErr bool
	}{
		{"letter", "A", A, false},
		{"digit", "0", Digit0, false},
		{"function key", "F12", F12, false},
		{"case insensitive", "scrolllock", ScrollLock, false},
		{"with whitespace", "  ESC  ", Escape, false},
		{"unknown", "NOPE", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if tt.wantErr {
				if ok {
					t.Fatalf("expected Parse(%q) to fail, got %v", tt.input, got)
				}
				return
			}
			if !ok || got != tt.want {
				t.Fatalf("Parse(%q) = %v, %v; want %v, true", tt.input, got, ok, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for k := KeyCode(1); k < keyCount; k++ {
		if !k.Valid() {
			continue
		}
		name := k.String()
		if name == "" || name == "UNKNOWN" {
			continue
		}
		got, ok := Parse(name)
		if !ok || got != k {
			t.Errorf("round trip failed for %v: String() = %q, Parse gave %v, %v", k, name, got, ok)
		}
	}
}

func TestEventDirectionHelpers(t *testing.T) {
	press := NewPress(A, 100, "dev1")
	release := NewRelease(A, 200, "dev1")

	if !press.IsPress() || press.IsRelease() {
		t.Fatalf("press classified wrong: %+v", press)
	}
	if !release.IsRelease() || release.IsPress() {
		t.Fatalf("release classified wrong: %+v", release)
	}

	withB := press.WithKey(B)
	if withB.Key != B || withB.Direction != Press || withB.TimestampUs != 100 || withB.Device != "dev1" {
		t.Fatalf("WithKey changed more than the key: %+v", withB)
	}
}
