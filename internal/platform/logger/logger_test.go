package logger

import "testing"

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"development", "production", " PROD "} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.With("component", "test").Debug("built", "mode", mode)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("discarded", "key", 1)
	l.Sync()
}
