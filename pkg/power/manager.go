package power

import (
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Handle identifies a subscription. Handles are never reused.
type Handle uint64

type subscription struct {
	handle Handle
	cb     func()
}

// Manager provides battery status of the device and relays charge level
// change notifications from a Backend to any number of subscribers.
//
// Native monitoring is active only while there is at least one subscriber.
// Callbacks run on the goroutine the backend notifies from, without any
// Manager lock held, so they may Subscribe or Unsubscribe.
type Manager struct {
	backend Backend

	mu     sync.Mutex
	subs   []subscription
	next   Handle
	active bool
	// activating is set while StartMonitoring runs without mu held.
	// Subscribers arriving meanwhile wait on cond.
	activating bool
	cond       *sync.Cond
	// epoch is bumped on every activation so notifications from a
	// previous activation are dropped.
	epoch uint64
}

// NewManager returns a Manager backed by b.
func NewManager(b Backend) *Manager {
	if b == nil {
		b = Unsupported{}
	}
	m := &Manager{backend: b}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Backend returns the backend name.
func (m *Manager) Backend() string {
	return m.backend.Name()
}

// RemainingChargePercent returns the total percentage of charge remaining
// from all batteries connected to the device.
func (m *Manager) RemainingChargePercent() (int, error) {
	logrus.Tracef("RemainingChargePercent called")

	p, err := m.backend.RemainingChargePercent()
	if err != nil {
		return 0, err
	}
	if p < 0 || p > 100 {
		return 0, errors.Errorf("backend %s reported charge %d%% out of range", m.backend.Name(), p)
	}

	logrus.Tracef("RemainingChargePercent returned %d", p)

	return p, nil
}

// BatteryStatus returns the device's battery status.
func (m *Manager) BatteryStatus() (BatteryStatus, error) {
	return m.backend.BatteryStatus()
}

// PowerSupplyStatus returns the device's power supply status.
func (m *Manager) PowerSupplyStatus() (PowerSupplyStatus, error) {
	return m.backend.PowerSupplyStatus()
}

// RemainingDischargeTime estimates how long is left until the battery is
// fully discharged. It is zero when the device is not discharging.
func (m *Manager) RemainingDischargeTime() (time.Duration, error) {
	return m.backend.RemainingDischargeTime()
}

// EnergySaverStatus returns the battery saver status.
func (m *Manager) EnergySaverStatus() (EnergySaverStatus, error) {
	return m.backend.EnergySaverStatus()
}

// Subscribe registers cb to be called whenever the platform signals a
// charge level change. The first subscription activates native
// monitoring; if that fails cb is not registered.
//
// The backend is started without the Manager lock held, so a backend may
// notify synchronously from StartMonitoring. Such notifications arrive
// before any subscriber is registered and are dropped.
func (m *Manager) Subscribe(cb func()) (Handle, error) {
	if cb == nil {
		return 0, errors.New("callback is nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for m.activating {
		m.cond.Wait()
	}

	if len(m.subs) == 0 && !m.active {
		if err := m.activateLocked(); err != nil {
			return 0, err
		}
	}

	m.next++
	h := m.next
	m.subs = append(m.subs, subscription{handle: h, cb: cb})

	logrus.WithFields(logrus.Fields{
		"handle":      h,
		"subscribers": len(m.subs),
	}).Trace("subscribed to charge changes")

	return h, nil
}

// activateLocked starts native monitoring. mu is released for the
// duration of StartMonitoring and held again on return.
func (m *Manager) activateLocked() error {
	m.activating = true
	epoch := m.epoch + 1
	m.mu.Unlock()

	err := m.backend.StartMonitoring(func() { m.dispatch(epoch) })

	m.mu.Lock()
	m.activating = false
	m.cond.Broadcast()

	if err != nil {
		return errors.Wrapf(err, "failed to start monitoring with backend %s", m.backend.Name())
	}
	m.epoch = epoch
	m.active = true
	logrus.WithField("backend", m.backend.Name()).Debug("charge monitoring activated")
	return nil
}

// Unsubscribe removes a subscription. Removing the last one deactivates
// native monitoring. Unknown or already removed handles are ignored.
func (m *Manager) Unsubscribe(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(h)
	if idx < 0 {
		return
	}
	m.subs = append(m.subs[:idx:idx], m.subs[idx+1:]...)

	logrus.WithFields(logrus.Fields{
		"handle":      h,
		"subscribers": len(m.subs),
	}).Trace("unsubscribed from charge changes")

	if len(m.subs) > 0 || !m.active {
		return
	}

	m.active = false
	if err := m.backend.StopMonitoring(); err != nil {
		logrus.WithField("backend", m.backend.Name()).Warnf("failed to stop monitoring: %v", err)
		return
	}
	logrus.WithField("backend", m.backend.Name()).Debug("charge monitoring deactivated")
}

// Subscribers returns the number of active subscriptions.
func (m *Manager) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Monitoring reports whether native monitoring is active.
func (m *Manager) Monitoring() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Close releases the backend if it holds a native handle.
func (m *Manager) Close() error {
	if c, ok := m.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (m *Manager) indexOf(h Handle) int {
	for i, s := range m.subs {
		if s.handle == h {
			return i
		}
	}
	return -1
}

func (m *Manager) dispatch(epoch uint64) {
	m.mu.Lock()
	if !m.active || epoch != m.epoch {
		m.mu.Unlock()
		return
	}
	snapshot := make([]subscription, len(m.subs))
	copy(snapshot, m.subs)
	m.mu.Unlock()

	for _, s := range snapshot {
		// A callback earlier in this round may have removed s.
		m.mu.Lock()
		alive := m.indexOf(s.handle) >= 0
		m.mu.Unlock()
		if !alive {
			continue
		}
		s.cb()
	}
}
