package events

import "encoding/json"

// Event name constants
const (
	BatteryCharge  = "battery.charge"
	ConfigReloaded = "config.reloaded"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// ChargeChangedEvent is the typed payload for battery.charge.
type ChargeChangedEvent struct {
	Percent int    `json:"percent"`
	Status  string `json:"status"`
	Ts      int64  `json:"ts"`
}

// ConfigReloadedEvent is the typed payload for config.reloaded.
type ConfigReloadedEvent struct {
	Backend string `json:"backend"`
	Locale  string `json:"locale,omitempty"`
	Ts      int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.ChargeChangedEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.Percent, payload.Status)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
