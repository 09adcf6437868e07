//go:build darwin && !ios

package smc

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// IsChargingEnabled reports whether the SMC allows the battery to charge.
// A non-zero inhibit key means charging was turned off, e.g. by a charge
// limiter, even though the adapter is connected.
func (c *AppleSMC) IsChargingEnabled() (bool, error) {
	logrus.Tracef("IsChargingEnabled called")

	v, err := c.Read(ChargingInhibitKey)
	if err != nil {
		return false, err
	}
	if len(v.Bytes) == 0 {
		return false, errors.Errorf("empty value for key %s", ChargingInhibitKey)
	}

	for _, b := range v.Bytes {
		if b != 0 {
			logrus.Tracef("IsChargingEnabled returned false")
			return false, nil
		}
	}

	logrus.Tracef("IsChargingEnabled returned true")
	return true, nil
}
