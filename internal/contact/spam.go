package contact

import "time"

// HoneypotFields are rendered invisibly by the form; people leave them empty.
var HoneypotFields = []string{"website", "url", "homepage"}

// HoneypotTriggered reports whether any decoy field carries a truthy value.
func HoneypotTriggered(payload Payload) bool {
	for _, field := range HoneypotFields {
		if truthy(payload[field]) {
			return true
		}
	}
	return false
}

// truthy follows JavaScript truthiness for decoded JSON values.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case float64:
		return x != 0
	default:
		return true
	}
}

// TimingWindow bounds how long a person may take between rendering the form
// and submitting it. Both ends are inclusive.
type TimingWindow struct {
	Min time.Duration
	Max time.Duration
}

// Allows reports whether payload["timestamp"] (milliseconds since epoch) lies
// within the window relative to now. Missing or non-numeric timestamps fail.
func (w TimingWindow) Allows(payload Payload, now time.Time) bool {
	ts, ok := payload["timestamp"].(float64)
	if !ok {
		return false
	}
	elapsed := float64(now.UnixMilli()) - ts
	return elapsed >= float64(w.Min.Milliseconds()) && elapsed <= float64(w.Max.Milliseconds())
}
