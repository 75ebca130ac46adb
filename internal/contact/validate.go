package contact

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailPattern accepts anything shaped like local@domain.tld. It is
// deliberately loose; do not tighten it to RFC 5322. RE2's \s is ASCII only,
// so Unicode separators and the BOM are excluded explicitly to match the
// browser's notion of whitespace.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

type form struct {
	Name    string `validate:"min=2,max=100"`
	Email   string `validate:"contactemail"`
	Message string `validate:"min=10,max=1000"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate reports whether payload carries a string name of 2..100 characters,
// a loosely well-formed string email and a string message of 10..1000
// characters. Missing keys and non-string values fail.
func Validate(payload Payload) bool {
	if payload == nil {
		return false
	}
	name, ok := payload["name"].(string)
	if !ok {
		return false
	}
	email, ok := payload["email"].(string)
	if !ok {
		return false
	}
	message, ok := payload["message"].(string)
	if !ok {
		return false
	}
	return formValidator.Struct(form{Name: name, Email: email, Message: message}) == nil
}
