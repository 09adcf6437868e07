package power

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestManagerReport(t *testing.T) {
	b := NewMock(64)
	b.SetStatus(BatteryDischarging, PowerSupplyNotPresent)
	b.SetDischargeTime(90 * time.Minute)
	b.SetEnergySaver(EnergySaverOn)

	r, err := NewManager(b).Report()
	if err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	if r.ChargePercent == nil || *r.ChargePercent != 64 {
		t.Errorf("ChargePercent = %v, want 64", r.ChargePercent)
	}
	if r.RemainingDischargeTime() != 90*time.Minute {
		t.Errorf("RemainingDischargeTime() = %v, want 1h30m", r.RemainingDischargeTime())
	}

	b2, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	for _, want := range []string{`"batteryStatus":"Discharging"`, `"energySaverStatus":"On"`, `"backend":"mock"`} {
		if !strings.Contains(string(b2), want) {
			t.Errorf("report JSON %s does not contain %s", b2, want)
		}
	}
}

func TestManagerReportUnsupported(t *testing.T) {
	r, err := NewManager(Unsupported{}).Report()
	if err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	if r.ChargePercent != nil || r.BatteryStatus != nil || r.EnergySaverStatus != nil {
		t.Errorf("unsupported backend should report nothing, got %+v", r)
	}
	if r.Backend != BackendUnsupported {
		t.Errorf("Backend = %q, want %q", r.Backend, BackendUnsupported)
	}
}
