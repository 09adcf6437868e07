package power

import (
	"time"

	"github.com/pkg/errors"

	"github.com/charlie0129/rtshim/pkg/platform"
)

// Report is a point-in-time reading of everything a backend supports.
// Fields the backend cannot provide are nil.
type Report struct {
	Backend                   string             `json:"backend"`
	ChargePercent             *int               `json:"chargePercent,omitempty"`
	BatteryStatus             *BatteryStatus     `json:"batteryStatus,omitempty"`
	PowerSupplyStatus         *PowerSupplyStatus `json:"powerSupplyStatus,omitempty"`
	RemainingDischargeSeconds *int64             `json:"remainingDischargeSeconds,omitempty"`
	EnergySaverStatus         *EnergySaverStatus `json:"energySaverStatus,omitempty"`
}

// RemainingDischargeTime returns the discharge estimate as a duration, or
// zero when it is not reported.
func (r *Report) RemainingDischargeTime() time.Duration {
	if r.RemainingDischargeSeconds == nil {
		return 0
	}
	return time.Duration(*r.RemainingDischargeSeconds) * time.Second
}

// Report reads every property once. Unsupported properties are left nil;
// any other failure is returned.
func (m *Manager) Report() (*Report, error) {
	r := &Report{Backend: m.Backend()}

	if p, err := m.RemainingChargePercent(); err == nil {
		r.ChargePercent = &p
	} else if !errors.Is(err, platform.ErrUnsupported) {
		return nil, err
	}

	if s, err := m.BatteryStatus(); err == nil {
		r.BatteryStatus = &s
	} else if !errors.Is(err, platform.ErrUnsupported) {
		return nil, err
	}

	if s, err := m.PowerSupplyStatus(); err == nil {
		r.PowerSupplyStatus = &s
	} else if !errors.Is(err, platform.ErrUnsupported) {
		return nil, err
	}

	if d, err := m.RemainingDischargeTime(); err == nil {
		secs := int64(d / time.Second)
		r.RemainingDischargeSeconds = &secs
	} else if !errors.Is(err, platform.ErrUnsupported) {
		return nil, err
	}

	if s, err := m.EnergySaverStatus(); err == nil {
		r.EnergySaverStatus = &s
	} else if !errors.Is(err, platform.ErrUnsupported) {
		return nil, err
	}

	return r, nil
}
