package power

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charlie0129/rtshim/pkg/platform"
)

func TestManagerRemainingChargePercent(t *testing.T) {
	tests := []struct {
		name    string
		backend Backend
		want    int
		wantErr error
	}{
		{
			name:    "mock backend",
			backend: NewMock(42),
			want:    42,
		},
		{
			name:    "unsupported backend",
			backend: Unsupported{},
			wantErr: platform.ErrUnsupported,
		},
		{
			name:    "nil backend",
			backend: nil,
			wantErr: platform.ErrUnsupported,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.backend)
			// Every call must behave the same way.
			for i := 0; i < 3; i++ {
				got, err := m.RemainingChargePercent()
				if tt.wantErr != nil {
					if !errors.Is(err, tt.wantErr) {
						t.Fatalf("RemainingChargePercent() error = %v, want %v", err, tt.wantErr)
					}
					continue
				}
				if err != nil {
					t.Fatalf("RemainingChargePercent() unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("RemainingChargePercent() = %d, want %d", got, tt.want)
				}
			}
		})
	}
}

func TestManagerRejectsOutOfRangeCharge(t *testing.T) {
	m := NewManager(NewMock(101))
	if _, err := m.RemainingChargePercent(); err == nil {
		t.Fatalf("expected error for a reading above 100")
	}
}

func TestManagerSubscribeUnsubscribeDeactivates(t *testing.T) {
	b := NewMock(50)
	m := NewManager(b)

	h, err := m.Subscribe(func() {})
	if err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	if !b.Monitoring() || !m.Monitoring() {
		t.Fatalf("monitoring should be active after the first subscription")
	}

	m.Unsubscribe(h)
	if b.Monitoring() || m.Monitoring() {
		t.Fatalf("monitoring should be inactive after the last unsubscription")
	}

	started, stopped := b.Activations()
	if started != 1 || stopped != 1 {
		t.Errorf("activations = %d/%d, want 1/1", started, stopped)
	}
}

func TestManagerActivationIsReferenceCounted(t *testing.T) {
	b := NewMock(50)
	m := NewManager(b)

	h1, _ := m.Subscribe(func() {})
	h2, _ := m.Subscribe(func() {})
	h3, _ := m.Subscribe(func() {})

	if started, _ := b.Activations(); started != 1 {
		t.Fatalf("monitoring started %d times, want 1", started)
	}

	m.Unsubscribe(h2)
	m.Unsubscribe(h1)
	if !b.Monitoring() {
		t.Fatalf("monitoring stopped while a subscriber remains")
	}

	m.Unsubscribe(h3)
	if b.Monitoring() {
		t.Fatalf("monitoring still active without subscribers")
	}

	// 0 -> 1 again re-activates.
	h4, _ := m.Subscribe(func() {})
	defer m.Unsubscribe(h4)
	if started, stopped := b.Activations(); started != 2 || stopped != 1 {
		t.Errorf("activations = %d/%d, want 2/1", started, stopped)
	}
}

func TestManagerDuplicateUnsubscribe(t *testing.T) {
	b := NewMock(50)
	m := NewManager(b)

	h, _ := m.Subscribe(func() {})
	m.Unsubscribe(h)
	m.Unsubscribe(h)
	m.Unsubscribe(Handle(12345))

	if _, stopped := b.Activations(); stopped != 1 {
		t.Errorf("monitoring stopped %d times, want 1", stopped)
	}
	if m.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", m.Subscribers())
	}
}

func TestManagerDeliversToEverySubscriberOnce(t *testing.T) {
	b := NewMock(50)
	m := NewManager(b)

	counts := make([]int, 3)
	handles := make([]Handle, 3)
	for i := range counts {
		i := i
		h, err := m.Subscribe(func() { counts[i]++ })
		if err != nil {
			t.Fatalf("Subscribe returned error: %v", err)
		}
		handles[i] = h
	}

	b.SetPercent(49)
	b.SetPercent(48)

	for i, c := range counts {
		if c != 2 {
			t.Errorf("subscriber %d received %d notifications, want 2", i, c)
		}
	}

	m.Unsubscribe(handles[1])
	b.SetPercent(47)

	want := []int{3, 2, 3}
	for i, c := range counts {
		if c != want[i] {
			t.Errorf("subscriber %d received %d notifications, want %d", i, c, want[i])
		}
	}

	m.Unsubscribe(handles[0])
	m.Unsubscribe(handles[2])
}

func TestManagerReentrantUnsubscribe(t *testing.T) {
	b := NewMock(50)
	m := NewManager(b)

	var self, other Handle
	var selfCalls, otherCalls, lastCalls int

	self, _ = m.Subscribe(func() {
		selfCalls++
		m.Unsubscribe(self)
		m.Unsubscribe(other)
	})
	other, _ = m.Subscribe(func() { otherCalls++ })
	last, _ := m.Subscribe(func() { lastCalls++ })

	b.SetPercent(40)
	b.SetPercent(30)

	if selfCalls != 1 {
		t.Errorf("self-removing subscriber called %d times, want 1", selfCalls)
	}
	if otherCalls != 0 {
		t.Errorf("subscriber removed earlier in the round was called %d times, want 0", otherCalls)
	}
	if lastCalls != 2 {
		t.Errorf("remaining subscriber called %d times, want 2", lastCalls)
	}

	m.Unsubscribe(last)
	if b.Monitoring() {
		t.Errorf("monitoring still active without subscribers")
	}
}

func TestManagerReentrantUnsubscribeLast(t *testing.T) {
	b := NewMock(50)
	m := NewManager(b)

	var h Handle
	h, _ = m.Subscribe(func() { m.Unsubscribe(h) })

	b.SetPercent(10)

	if b.Monitoring() {
		t.Errorf("monitoring still active after the only subscriber left from its callback")
	}
}

func TestManagerSubscribeStartFailure(t *testing.T) {
	b := NewMock(50)
	b.FailStart(errors.New("boom"))
	m := NewManager(b)

	if _, err := m.Subscribe(func() {}); err == nil {
		t.Fatalf("expected Subscribe to fail")
	}
	if m.Subscribers() != 0 || m.Monitoring() {
		t.Errorf("failed subscription must not be registered")
	}

	m = NewManager(Unsupported{})
	if _, err := m.Subscribe(func() {}); !errors.Is(err, platform.ErrUnsupported) {
		t.Errorf("Subscribe() error = %v, want %v", err, platform.ErrUnsupported)
	}
}

func TestManagerDropsStaleNotifications(t *testing.T) {
	b := NewMock(50)
	m := NewManager(b)

	var stale func()
	h, _ := m.Subscribe(func() {})
	stale = b.notify
	m.Unsubscribe(h)

	calls := 0
	h, _ = m.Subscribe(func() { calls++ })
	defer m.Unsubscribe(h)

	stale()
	if calls != 0 {
		t.Errorf("notification from a previous activation was delivered")
	}

	b.SetPercent(20)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestManagerSubscribeNilCallback(t *testing.T) {
	m := NewManager(NewMock(50))
	if _, err := m.Subscribe(nil); err == nil {
		t.Errorf("expected error for nil callback")
	}
}

// eagerMock notifies once from inside StartMonitoring, as backends that
// report the current level on activation do.
type eagerMock struct {
	*Mock
}

func (e eagerMock) StartMonitoring(notify func()) error {
	if err := e.Mock.StartMonitoring(notify); err != nil {
		return err
	}
	notify()
	return nil
}

func TestManagerSynchronousNotifyOnStart(t *testing.T) {
	b := eagerMock{NewMock(50)}
	m := NewManager(b)

	done := make(chan Handle, 1)
	calls := 0
	go func() {
		h, err := m.Subscribe(func() { calls++ })
		if err != nil {
			t.Errorf("Subscribe returned error: %v", err)
		}
		done <- h
	}()

	var h Handle
	select {
	case h = <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Subscribe did not return while the backend notified during start")
	}
	defer m.Unsubscribe(h)

	if calls != 0 {
		t.Errorf("notification during activation was delivered %d times, want 0", calls)
	}

	b.SetPercent(40)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestManagerConcurrentFirstSubscribers(t *testing.T) {
	b := NewMock(50)
	m := NewManager(b)

	const n = 8
	var wg sync.WaitGroup
	handles := make([]Handle, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := m.Subscribe(func() {})
			if err != nil {
				t.Errorf("Subscribe returned error: %v", err)
			}
			handles[i] = h
		}(i)
	}
	wg.Wait()

	if started, _ := b.Activations(); started != 1 {
		t.Errorf("monitoring started %d times, want 1", started)
	}
	if m.Subscribers() != n {
		t.Errorf("Subscribers() = %d, want %d", m.Subscribers(), n)
	}

	for _, h := range handles {
		m.Unsubscribe(h)
	}
	if b.Monitoring() {
		t.Errorf("monitoring still active without subscribers")
	}
}
