package middleware

import (
	"context"
	"net/http"
)

// ConsentCookie stores the visitor's analytics choice ("granted" or "denied").
const ConsentCookie = "cookie_consent"

// ConsentState is the analytics consent recorded for a visitor.
type ConsentState string

const (
	ConsentUnknown ConsentState = ""
	ConsentGranted ConsentState = "granted"
	ConsentDenied  ConsentState = "denied"
)

type consentKey struct{}

// Consent reads the consent cookie into the request context.
func Consent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := ConsentUnknown
		if c, err := r.Cookie(ConsentCookie); err == nil {
			switch ConsentState(c.Value) {
			case ConsentGranted:
				state = ConsentGranted
			case ConsentDenied:
				state = ConsentDenied
			}
		}
		ctx := context.WithValue(r.Context(), consentKey{}, state)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ConsentFromContext returns the recorded consent, ConsentUnknown when absent.
func ConsentFromContext(ctx context.Context) ConsentState {
	v, _ := ctx.Value(consentKey{}).(ConsentState)
	return v
}
