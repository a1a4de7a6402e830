package views

import "testing"

func TestBellRespectsHapticSetting(t *testing.T) {
	if cmd := bell(false); cmd != nil {
		t.Error("bell(false) should produce no command")
	}
	if cmd := bell(true); cmd == nil {
		t.Error("bell(true) should produce a command")
	}
}
