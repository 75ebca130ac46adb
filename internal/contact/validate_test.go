package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPayload() Payload {
	return Payload{
		"name":    "Jan Novák",
		"email":   "jan@example.cz",
		"message": "Potřebujeme nový web.",
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(Payload)
		want   bool
	}{
		{name: "valid", mutate: func(Payload) {}, want: true},
		{name: "name at lower bound", mutate: func(p Payload) { p["name"] = "Jo" }, want: true},
		{name: "name too short", mutate: func(p Payload) { p["name"] = "J" }, want: false},
		{name: "name at upper bound", mutate: func(p Payload) { p["name"] = strings.Repeat("a", 100) }, want: true},
		{name: "name too long", mutate: func(p Payload) { p["name"] = strings.Repeat("a", 101) }, want: false},
		{name: "name counts characters not bytes", mutate: func(p Payload) { p["name"] = strings.Repeat("ř", 100) }, want: true},
		{name: "name not a string", mutate: func(p Payload) { p["name"] = float64(42) }, want: false},
		{name: "name missing", mutate: func(p Payload) { delete(p, "name") }, want: false},
		{name: "email without at", mutate: func(p Payload) { p["email"] = "jan.example.cz" }, want: false},
		{name: "email without dot in domain", mutate: func(p Payload) { p["email"] = "jan@example" }, want: false},
		{name: "email with whitespace", mutate: func(p Payload) { p["email"] = "jan @example.cz" }, want: false},
		{name: "email with no-break space", mutate: func(p Payload) { p["email"] = "jan\u00a0x@example.cz" }, want: false},
		{name: "email with line separator", mutate: func(p Payload) { p["email"] = "jan@example\u2028.cz" }, want: false},
		{name: "email with ideographic space", mutate: func(p Payload) { p["email"] = "jan@exa\u3000mple.cz" }, want: false},
		{name: "email with byte order mark", mutate: func(p Payload) { p["email"] = "\ufeffjan@example.cz" }, want: false},
		{name: "email with vertical tab", mutate: func(p Payload) { p["email"] = "jan\v@example.cz" }, want: false},
		{name: "email with padding", mutate: func(p Payload) { p["email"] = " jan@example.cz " }, want: false},
		{name: "email with unicode letters accepted", mutate: func(p Payload) { p["email"] = "jan.dvořák@příklad.cz" }, want: true},
		{name: "email loose form accepted", mutate: func(p Payload) { p["email"] = "a@b.c" }, want: true},
		{name: "email not a string", mutate: func(p Payload) { p["email"] = true }, want: false},
		{name: "message at lower bound", mutate: func(p Payload) { p["message"] = "0123456789" }, want: true},
		{name: "message too short", mutate: func(p Payload) { p["message"] = "012345678" }, want: false},
		{name: "message at upper bound", mutate: func(p Payload) { p["message"] = strings.Repeat("m", 1000) }, want: true},
		{name: "message too long", mutate: func(p Payload) { p["message"] = strings.Repeat("m", 1001) }, want: false},
		{name: "message not a string", mutate: func(p Payload) { p["message"] = []any{"hello world"} }, want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			payload := validPayload()
			tc.mutate(payload)
			assert.Equal(t, tc.want, Validate(payload))
		})
	}
}

func TestValidateNilPayload(t *testing.T) {
	t.Parallel()
	assert.False(t, Validate(nil))
}
