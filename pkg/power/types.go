package power

import (
	"github.com/pkg/errors"
)

// BatteryStatus indicates the status of the battery.
type BatteryStatus int

const (
	// BatteryNotPresent indicates the battery or battery controller is not present.
	BatteryNotPresent BatteryStatus = iota
	// BatteryDischarging indicates the battery is discharging.
	BatteryDischarging
	// BatteryIdle indicates the battery is neither charging nor discharging.
	BatteryIdle
	// BatteryCharging indicates the battery is charging.
	BatteryCharging
)

var batteryStatusNames = [...]string{"NotPresent", "Discharging", "Idle", "Charging"}

func (s BatteryStatus) String() string {
	if s < 0 || int(s) >= len(batteryStatusNames) {
		return "Unknown"
	}
	return batteryStatusNames[s]
}

func (s BatteryStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *BatteryStatus) UnmarshalText(b []byte) error {
	i, err := parseName(batteryStatusNames[:], string(b))
	if err != nil {
		return errors.Wrap(err, "invalid battery status")
	}
	*s = BatteryStatus(i)
	return nil
}

// PowerSupplyStatus represents the device's power supply status.
//
// Inadequate means a supply is present but the net charge rate is
// negative, e.g. the device is plugged in but still losing charge.
type PowerSupplyStatus int

const (
	// PowerSupplyNotPresent indicates the device has no power supply.
	PowerSupplyNotPresent PowerSupplyStatus = iota
	// PowerSupplyInadequate indicates the device has an inadequate power supply.
	PowerSupplyInadequate
	// PowerSupplyAdequate indicates the device has an adequate power supply.
	PowerSupplyAdequate
)

var powerSupplyStatusNames = [...]string{"NotPresent", "Inadequate", "Adequate"}

func (s PowerSupplyStatus) String() string {
	if s < 0 || int(s) >= len(powerSupplyStatusNames) {
		return "Unknown"
	}
	return powerSupplyStatusNames[s]
}

func (s PowerSupplyStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *PowerSupplyStatus) UnmarshalText(b []byte) error {
	i, err := parseName(powerSupplyStatusNames[:], string(b))
	if err != nil {
		return errors.Wrap(err, "invalid power supply status")
	}
	*s = PowerSupplyStatus(i)
	return nil
}

// EnergySaverStatus specifies the status of battery saver.
type EnergySaverStatus int

const (
	// EnergySaverDisabled indicates battery saver is off permanently or the
	// device is plugged in.
	EnergySaverDisabled EnergySaverStatus = iota
	// EnergySaverOff indicates battery saver is off now, but ready to turn
	// on automatically.
	EnergySaverOff
	// EnergySaverOn indicates battery saver is on.
	EnergySaverOn
)

var energySaverStatusNames = [...]string{"Disabled", "Off", "On"}

func (s EnergySaverStatus) String() string {
	if s < 0 || int(s) >= len(energySaverStatusNames) {
		return "Unknown"
	}
	return energySaverStatusNames[s]
}

func (s EnergySaverStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *EnergySaverStatus) UnmarshalText(b []byte) error {
	i, err := parseName(energySaverStatusNames[:], string(b))
	if err != nil {
		return errors.Wrap(err, "invalid energy saver status")
	}
	*s = EnergySaverStatus(i)
	return nil
}

func parseName(names []string, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, errors.Errorf("unknown value %q", name)
}

// clampPercent keeps a reading inside [0,100]. Some battery controllers
// report slightly more than the full capacity.
func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
