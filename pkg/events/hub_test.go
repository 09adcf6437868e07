package events

import "testing"

func TestEventHubPublish(t *testing.T) {
	h := NewEventHub()
	a := h.Subscribe()
	b := h.Subscribe()

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	h.Publish(BatteryCharge, ChargeChangedEvent{Percent: 55, Status: "Charging", Ts: 1})

	for _, ch := range []chan Event{a, b} {
		ev := <-ch
		if ev.Name != BatteryCharge {
			t.Errorf("event name = %q, want %q", ev.Name, BatteryCharge)
		}
		got, err := DecodeAs[ChargeChangedEvent](ev)
		if err != nil {
			t.Fatalf("DecodeAs() error: %v", err)
		}
		if got.Percent != 55 || got.Status != "Charging" {
			t.Errorf("payload = %+v", got)
		}
	}
}

func TestEventHubUnsubscribe(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()

	h.Unsubscribe(ch)
	h.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Errorf("channel should be closed after Unsubscribe")
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}

	// Publishing without subscribers is a no-op.
	h.Publish(ConfigReloaded, ConfigReloadedEvent{Backend: "none"})
}

func TestEventHubDropsForSlowSubscriber(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	for i := 0; i < cap(ch)+10; i++ {
		h.Publish(BatteryCharge, ChargeChangedEvent{Percent: i})
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered events = %d, want %d", len(ch), cap(ch))
	}
}

func TestDecodeAsEmpty(t *testing.T) {
	got, err := DecodeAs[ChargeChangedEvent](Event{Name: BatteryCharge})
	if err != nil || got.Percent != 0 {
		t.Errorf("DecodeAs() = %+v, %v, want zero value", got, err)
	}
}
