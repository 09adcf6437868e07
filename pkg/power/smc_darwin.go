//go:build darwin && !ios

package power

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/rtshim/pkg/platform"
	"github.com/charlie0129/rtshim/pkg/smc"
)

// powerThreshold is the battery power in watts below which the battery
// is considered idle.
const powerThreshold = 0.05

// SMC reads the Apple System Management Controller directly. It needs no
// helper processes but only reports what the SMC keys expose.
type SMC struct {
	conn *smc.AppleSMC
	poll *poller
}

var _ Backend = &SMC{}

func newSMC(opts Options) (Backend, error) {
	conn := smc.New()
	if err := conn.Open(); err != nil {
		return nil, errors.Wrap(err, "failed to open smc connection")
	}
	return NewSMCWithConnection(conn, opts), nil
}

// NewSMCWithConnection returns an SMC backend over an opened connection.
func NewSMCWithConnection(conn *smc.AppleSMC, opts Options) *SMC {
	s := &SMC{conn: conn}
	s.poll = newPoller(BackendSMC, opts.pollInterval(), s.RemainingChargePercent)
	return s
}

func (s *SMC) Name() string { return BackendSMC }

func (s *SMC) RemainingChargePercent() (int, error) {
	charge, err := s.conn.GetBatteryCharge()
	if err != nil {
		return 0, errors.Wrap(err, "failed to read battery charge")
	}
	return clampPercent(charge), nil
}

func (s *SMC) BatteryStatus() (BatteryStatus, error) {
	// A connected adapter with charging inhibited holds the battery at its
	// current level regardless of the small currents the SMC reports.
	if s.chargingInhibited() {
		return BatteryIdle, nil
	}

	p, err := s.conn.GetBatteryPower()
	if err != nil {
		return BatteryNotPresent, err
	}

	switch {
	case p > powerThreshold:
		return BatteryCharging, nil
	case p < -powerThreshold:
		return BatteryDischarging, nil
	default:
		return BatteryIdle, nil
	}
}

// chargingInhibited reports whether the adapter is connected but the SMC
// refuses to charge. Keys that cannot be read count as not inhibited.
func (s *SMC) chargingInhibited() bool {
	pluggedIn, err := s.conn.IsPluggedIn()
	if err != nil || !pluggedIn {
		return false
	}
	enabled, err := s.conn.IsChargingEnabled()
	if err != nil {
		logrus.WithError(err).Debug("failed to read charging state from smc")
		return false
	}
	return !enabled
}

func (s *SMC) PowerSupplyStatus() (PowerSupplyStatus, error) {
	pluggedIn, err := s.conn.IsPluggedIn()
	if err != nil {
		return PowerSupplyNotPresent, errors.Wrap(err, "failed to read ac power")
	}
	if !pluggedIn {
		return PowerSupplyNotPresent, nil
	}

	p, err := s.conn.GetBatteryPower()
	if err != nil {
		return PowerSupplyNotPresent, err
	}
	if p < -powerThreshold {
		return PowerSupplyInadequate, nil
	}

	return PowerSupplyAdequate, nil
}

func (s *SMC) RemainingDischargeTime() (time.Duration, error) {
	return 0, errors.Wrap(platform.ErrUnsupported, "discharge time is not reported by the smc")
}

func (s *SMC) EnergySaverStatus() (EnergySaverStatus, error) {
	return EnergySaverDisabled, errors.Wrap(platform.ErrUnsupported, "energy saver status is not reported by the smc")
}

func (s *SMC) StartMonitoring(notify func()) error {
	return s.poll.Start(notify)
}

func (s *SMC) StopMonitoring() error {
	return s.poll.Stop()
}

// Close closes the underlying SMC connection.
func (s *SMC) Close() error {
	return s.conn.Close()
}
