//go:build !ios && (linux || darwin || windows || freebsd || dragonfly || netbsd || openbsd || solaris)

package power

import (
	"math"
	"time"

	"github.com/distatus/battery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/rtshim/pkg/platform"
)

// Distatus reads batteries through github.com/distatus/battery, which
// wraps IOKit on macOS, the power APIs on Windows, and ACPI/sysctl on the BSDs.
type Distatus struct {
	poll *poller
}

var _ Backend = &Distatus{}

func newDistatus(opts Options) Backend {
	d := &Distatus{}
	d.poll = newPoller(BackendDistatus, opts.pollInterval(), d.RemainingChargePercent)
	return d
}

func (d *Distatus) Name() string { return BackendDistatus }

// batteries returns every battery that could be read. Partial failures are
// tolerated as long as one battery is usable.
func (d *Distatus) batteries() ([]*battery.Battery, error) {
	all, err := battery.GetAll()

	var ret []*battery.Battery
	for _, b := range all {
		if b != nil {
			ret = append(ret, b)
		}
	}

	if err != nil {
		if len(ret) == 0 {
			return nil, errors.Wrap(err, "failed to get battery info")
		}
		logrus.Debugf("some batteries could not be read: %v", err)
	}

	return ret, nil
}

func (d *Distatus) RemainingChargePercent() (int, error) {
	logrus.Tracef("distatus RemainingChargePercent called")

	bats, err := d.batteries()
	if err != nil {
		return 0, err
	}
	if len(bats) == 0 {
		return 0, errors.Wrap(platform.ErrUnsupported, "no battery found")
	}

	var current, full float64
	for _, b := range bats {
		current += b.Current
		full += b.Full
	}
	if full <= 0 {
		return 0, errors.New("batteries report zero full capacity")
	}

	return clampPercent(int(math.Round(current / full * 100))), nil
}

func (d *Distatus) BatteryStatus() (BatteryStatus, error) {
	bats, err := d.batteries()
	if err != nil {
		return BatteryNotPresent, err
	}
	if len(bats) == 0 {
		return BatteryNotPresent, nil
	}

	ret := BatteryIdle
	for _, b := range bats {
		switch b.State {
		case battery.Charging:
			return BatteryCharging, nil
		case battery.Discharging:
			ret = BatteryDischarging
		}
	}

	return ret, nil
}

// PowerSupplyStatus infers the supply from the battery state, since the
// library does not report adapters: a discharging or empty battery means
// there is no supply, anything else means an adequate one.
func (d *Distatus) PowerSupplyStatus() (PowerSupplyStatus, error) {
	bats, err := d.batteries()
	if err != nil {
		return PowerSupplyNotPresent, err
	}
	if len(bats) == 0 {
		return PowerSupplyNotPresent, nil
	}

	for _, b := range bats {
		if b.State == battery.Discharging || b.State == battery.Empty {
			return PowerSupplyNotPresent, nil
		}
	}

	return PowerSupplyAdequate, nil
}

func (d *Distatus) RemainingDischargeTime() (time.Duration, error) {
	bats, err := d.batteries()
	if err != nil {
		return 0, err
	}
	if len(bats) == 0 {
		return 0, errors.Wrap(platform.ErrUnsupported, "no battery found")
	}

	var current, rate float64
	for _, b := range bats {
		current += b.Current
		if b.State == battery.Discharging {
			// mW, some platforms report it negative while discharging.
			rate += math.Abs(b.ChargeRate)
		}
	}
	if rate == 0 {
		return 0, nil
	}

	// mWh / mW = hours
	return time.Duration(current / rate * float64(time.Hour)), nil
}

func (d *Distatus) EnergySaverStatus() (EnergySaverStatus, error) {
	return EnergySaverDisabled, errors.Wrap(platform.ErrUnsupported, "energy saver status is not reported by this backend")
}

func (d *Distatus) StartMonitoring(notify func()) error {
	return d.poll.Start(notify)
}

func (d *Distatus) StopMonitoring() error {
	return d.poll.Stop()
}
