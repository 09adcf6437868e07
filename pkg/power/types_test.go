package power

import (
	"encoding/json"
	"testing"
)

func TestStatusJSONNames(t *testing.T) {
	b, err := json.Marshal(map[string]any{
		"battery": BatteryCharging,
		"supply":  PowerSupplyInadequate,
		"saver":   EnergySaverOn,
	})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	want := `{"battery":"Charging","saver":"On","supply":"Inadequate"}`
	if string(b) != want {
		t.Errorf("Marshal() = %s, want %s", b, want)
	}

	var st BatteryStatus
	if err := st.UnmarshalText([]byte("Bogus")); err == nil {
		t.Errorf("expected error for an unknown battery status")
	}
	if got := BatteryStatus(42).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}

func TestNewBackend(t *testing.T) {
	for _, name := range []string{"", BackendAuto, BackendSysfs, BackendDistatus, BackendUnsupported} {
		b, err := NewBackend(name, Options{})
		if err != nil {
			t.Errorf("NewBackend(%q) error: %v", name, err)
			continue
		}
		if b == nil {
			t.Errorf("NewBackend(%q) returned nil", name)
		}
	}

	if _, err := NewBackend("bogus", Options{}); err == nil {
		t.Errorf("expected error for an unknown backend")
	}
}
