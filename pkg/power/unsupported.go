package power

import (
	"time"

	"github.com/charlie0129/rtshim/pkg/platform"
)

// Unsupported is the backend of platforms without battery introspection.
// Every call fails with platform.ErrUnsupported.
type Unsupported struct{}

var _ Backend = Unsupported{}

func (Unsupported) Name() string { return BackendUnsupported }

func (Unsupported) RemainingChargePercent() (int, error) {
	return 0, platform.ErrUnsupported
}

func (Unsupported) BatteryStatus() (BatteryStatus, error) {
	return BatteryNotPresent, platform.ErrUnsupported
}

func (Unsupported) PowerSupplyStatus() (PowerSupplyStatus, error) {
	return PowerSupplyNotPresent, platform.ErrUnsupported
}

func (Unsupported) RemainingDischargeTime() (time.Duration, error) {
	return 0, platform.ErrUnsupported
}

func (Unsupported) EnergySaverStatus() (EnergySaverStatus, error) {
	return EnergySaverDisabled, platform.ErrUnsupported
}

func (Unsupported) StartMonitoring(func()) error { return platform.ErrUnsupported }

func (Unsupported) StopMonitoring() error { return nil }
