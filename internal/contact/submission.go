package contact

import (
	"encoding/json"
	"fmt"
	"time"
)

// Payload is the untyped JSON object posted by the contact form.
type Payload map[string]any

// ParsePayload decodes body into a Payload. Anything that is not a single JSON
// object (invalid JSON, arrays, strings, null) yields ErrMalformedRequest.
func ParsePayload(body []byte) (Payload, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: body is %T, not an object", ErrMalformedRequest, raw)
	}
	return Payload(obj), nil
}

func (p Payload) hasFormFields() bool {
	for _, key := range []string{"name", "email", "message"} {
		if _, ok := p[key]; !ok {
			return false
		}
	}
	return true
}

func (p Payload) str(key string) string {
	v, _ := p[key].(string)
	return v
}

// RequestMeta carries transport details recorded alongside a submission.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
}

// Submission is an accepted, sanitised contact request. It is logged and
// optionally forwarded, never stored.
type Submission struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Message         string    `json:"message"`
	Locale          string    `json:"locale,omitempty"`
	ClientTimestamp int64     `json:"clientTimestamp"`
	ReceivedAt      time.Time `json:"receivedAt"`
}

// Receipt is returned to the caller for an accepted submission.
type Receipt struct {
	ID        string
	Timestamp int64
}
