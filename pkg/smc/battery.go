//go:build darwin && !ios

package smc

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// GetBatteryCharge returns the battery charge in percent.
func (c *AppleSMC) GetBatteryCharge() (int, error) {
	logrus.Tracef("GetBatteryCharge called")

	v, err := c.Read(BatteryChargeKey)
	if err != nil {
		return 0, err
	}

	if len(v.Bytes) != 1 {
		return 0, errors.Errorf("incorrect data length %d!=1", len(v.Bytes))
	}

	return int(v.Bytes[0]), nil
}

// GetBatteryPower returns the power flowing into the battery in watts.
// It is negative while the battery is discharging.
func (c *AppleSMC) GetBatteryPower() (float64, error) {
	logrus.Tracef("GetBatteryPower called")

	current, err := c.Read(BatteryCurrentKey)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read battery current")
	}
	voltage, err := c.Read(BatteryVoltageKey)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read battery voltage")
	}
	if len(current.Bytes) != 2 || len(voltage.Bytes) != 2 {
		return 0, errors.Errorf("incorrect data length %d/%d!=2", len(current.Bytes), len(voltage.Bytes))
	}

	// mA and mV, little-endian.
	mA := int16(binary.LittleEndian.Uint16(current.Bytes))
	mV := binary.LittleEndian.Uint16(voltage.Bytes)

	return float64(mA) / 1000.0 * float64(mV) / 1000.0, nil
}
