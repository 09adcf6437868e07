package power

import (
	"sync"
	"time"

	"github.com/charlie0129/rtshim/pkg/platform"
)

// Mock is an in-memory Backend. Readings are whatever was last set, and
// SetPercent fires the change notification while monitoring is active.
type Mock struct {
	mu            sync.Mutex
	percent       int
	status        BatteryStatus
	supply        PowerSupplyStatus
	dischargeTime time.Duration
	saver         *EnergySaverStatus
	startErr      error

	notify      func()
	activations int
	stops       int
}

var _ Backend = &Mock{}

// NewMock returns a Mock reporting percent on a discharging battery.
func NewMock(percent int) *Mock {
	return &Mock{
		percent: percent,
		status:  BatteryDischarging,
		supply:  PowerSupplyNotPresent,
	}
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) RemainingChargePercent() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.percent, nil
}

func (m *Mock) BatteryStatus() (BatteryStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status, nil
}

func (m *Mock) PowerSupplyStatus() (PowerSupplyStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.supply, nil
}

func (m *Mock) RemainingDischargeTime() (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dischargeTime, nil
}

func (m *Mock) EnergySaverStatus() (EnergySaverStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saver == nil {
		return EnergySaverDisabled, platform.ErrUnsupported
	}
	return *m.saver, nil
}

func (m *Mock) StartMonitoring(notify func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startErr != nil {
		return m.startErr
	}
	m.notify = notify
	m.activations++
	return nil
}

func (m *Mock) StopMonitoring() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = nil
	m.stops++
	return nil
}

// SetPercent changes the reported charge level and, if monitoring is
// active, delivers the notification on the calling goroutine.
func (m *Mock) SetPercent(p int) {
	m.mu.Lock()
	m.percent = p
	notify := m.notify
	m.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// SetStatus changes the reported battery and power supply status.
func (m *Mock) SetStatus(b BatteryStatus, s PowerSupplyStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = b
	m.supply = s
}

// SetDischargeTime changes the reported remaining discharge time.
func (m *Mock) SetDischargeTime(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dischargeTime = d
}

// SetEnergySaver makes the energy saver status supported and sets it.
func (m *Mock) SetEnergySaver(s EnergySaverStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saver = &s
}

// FailStart makes the next activations fail with err.
func (m *Mock) FailStart(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startErr = err
}

// Monitoring reports whether notifications are currently active.
func (m *Mock) Monitoring() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notify != nil
}

// Activations returns how many times monitoring was started and stopped.
func (m *Mock) Activations() (started, stopped int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activations, m.stops
}
