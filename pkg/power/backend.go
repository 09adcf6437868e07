package power

import (
	"time"

	"github.com/pkg/errors"
)

// Backend is a platform battery facility. Implementations only relay what
// the platform reports and never cache readings.
type Backend interface {
	// Name is the identifier the backend is selected by.
	Name() string

	RemainingChargePercent() (int, error)
	BatteryStatus() (BatteryStatus, error)
	PowerSupplyStatus() (PowerSupplyStatus, error)
	RemainingDischargeTime() (time.Duration, error)
	EnergySaverStatus() (EnergySaverStatus, error)

	// StartMonitoring activates platform change notifications. notify is
	// called every time the platform signals a charge level change, and
	// may be called before StartMonitoring returns.
	StartMonitoring(notify func()) error
	// StopMonitoring deactivates notifications. It must not block on
	// in-flight notify calls, because it may be called from one.
	StopMonitoring() error
}

// Backend names accepted by NewBackend.
const (
	BackendAuto        = "auto"
	BackendSysfs       = "sysfs"
	BackendDistatus    = "distatus"
	BackendSMC         = "smc"
	BackendUnsupported = "none"
)

const DefaultPollInterval = 10 * time.Second

// Options configures the native backends.
type Options struct {
	// PollInterval is how often change-detecting monitors sample the
	// charge level.
	PollInterval time.Duration
	// SysfsRoot overrides /sys for the sysfs backend.
	SysfsRoot string
}

func (o Options) pollInterval() time.Duration {
	if o.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return o.PollInterval
}

// BackendNames lists the names NewBackend accepts.
func BackendNames() []string {
	return []string{BackendAuto, BackendSysfs, BackendDistatus, BackendSMC, BackendUnsupported}
}

// NewBackend returns the backend registered under name. BackendAuto picks
// the native backend of the running platform. A backend that exists but is
// not available on this platform resolves to the unsupported backend.
func NewBackend(name string, opts Options) (Backend, error) {
	switch name {
	case "", BackendAuto:
		return newPlatformBackend(opts), nil
	case BackendSysfs:
		return NewSysfs(opts), nil
	case BackendDistatus:
		return newDistatus(opts), nil
	case BackendSMC:
		return newSMC(opts)
	case BackendUnsupported:
		return Unsupported{}, nil
	default:
		return nil, errors.Errorf("unknown power backend %q", name)
	}
}
