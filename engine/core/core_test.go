package core

import (
	"errors"
	"testing"
	"time"
)

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{" warn ", false},
		{"error", false},
		{"verbose", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := SetLogLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetLogLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidLogLevel) {
				t.Errorf("SetLogLevel(%q) error = %v, want ErrInvalidLogLevel", tt.level, err)
			}
		})
	}
	_ = SetLogLevel("info")
}

func TestIdentifier(t *testing.T) {
	a, b := IdentifierNew(), IdentifierNew()
	if a == b {
		t.Fatal("IdentifierNew() returned the same id twice")
	}
	if !IdentifierIsValid(a) || IdentifierIsValid(InvalidID) {
		t.Error("IdentifierIsValid() misreports validity")
	}
	parsed, err := IdentifierFromString(a.String())
	if err != nil || parsed != a {
		t.Errorf("IdentifierFromString(%s) = %s, %v", a, parsed, err)
	}
	if _, err := IdentifierFromString("not-an-id"); err == nil {
		t.Error("IdentifierFromString() accepted garbage")
	}
}

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	if c.Elapsed() != 0 {
		t.Fatalf("unstarted clock elapsed = %v", c.Elapsed())
	}

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	running := c.Elapsed()
	if running < 5*time.Millisecond {
		t.Errorf("Elapsed() = %v, want at least 5ms", running)
	}

	c.Stop()
	stopped := c.Elapsed()
	time.Sleep(2 * time.Millisecond)
	c.Update()
	if c.Elapsed() != stopped {
		t.Errorf("stopped clock kept running: %v -> %v", stopped, c.Elapsed())
	}
	if c.ElapsedSeconds() != stopped.Seconds() {
		t.Errorf("ElapsedSeconds() = %v", c.ElapsedSeconds())
	}
}
