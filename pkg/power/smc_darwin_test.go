//go:build darwin && !ios

package power

import (
	"testing"

	"github.com/charlie0129/rtshim/pkg/smc"
)

func TestSMCBackend(t *testing.T) {
	tests := []struct {
		name    string
		keys    map[string][]byte
		wantBat BatteryStatus
		wantPSU PowerSupplyStatus
	}{
		{
			name: "discharging on weak adapter",
			keys: map[string][]byte{
				smc.BatteryChargeKey:  {67},
				smc.ACPowerKey:        {1},
				smc.BatteryCurrentKey: {0x0c, 0xfe}, // -500 mA
				smc.BatteryVoltageKey: {0xe0, 0x2e}, // 12000 mV
			},
			wantBat: BatteryDischarging,
			wantPSU: PowerSupplyInadequate,
		},
		{
			name: "charging",
			keys: map[string][]byte{
				smc.BatteryChargeKey:   {67},
				smc.ACPowerKey:         {1},
				smc.ChargingInhibitKey: {0x00},
				smc.BatteryCurrentKey:  {0xf4, 0x01}, // 500 mA
				smc.BatteryVoltageKey:  {0xe0, 0x2e},
			},
			wantBat: BatteryCharging,
			wantPSU: PowerSupplyAdequate,
		},
		{
			name: "charging inhibited",
			keys: map[string][]byte{
				smc.BatteryChargeKey:   {67},
				smc.ACPowerKey:         {1},
				smc.ChargingInhibitKey: {0x02},
				smc.BatteryCurrentKey:  {0xf4, 0x01},
				smc.BatteryVoltageKey:  {0xe0, 0x2e},
			},
			wantBat: BatteryIdle,
			wantPSU: PowerSupplyAdequate,
		},
		{
			name: "inhibit key ignored on battery",
			keys: map[string][]byte{
				smc.BatteryChargeKey:   {67},
				smc.ACPowerKey:         {0},
				smc.ChargingInhibitKey: {0x02},
				smc.BatteryCurrentKey:  {0x0c, 0xfe},
				smc.BatteryVoltageKey:  {0xe0, 0x2e},
			},
			wantBat: BatteryDischarging,
			wantPSU: PowerSupplyNotPresent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSMCWithConnection(smc.NewMock(tt.keys), Options{})

			p, err := s.RemainingChargePercent()
			if err != nil {
				t.Fatalf("RemainingChargePercent() error: %v", err)
			}
			if p != 67 {
				t.Errorf("RemainingChargePercent() = %d, want 67", p)
			}

			if st, err := s.BatteryStatus(); err != nil || st != tt.wantBat {
				t.Errorf("BatteryStatus() = %v, %v, want %v", st, err, tt.wantBat)
			}
			if ps, err := s.PowerSupplyStatus(); err != nil || ps != tt.wantPSU {
				t.Errorf("PowerSupplyStatus() = %v, %v, want %v", ps, err, tt.wantPSU)
			}
		})
	}
}
