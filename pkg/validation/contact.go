package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-portfolio-backend/internal/domain"
)

// MaxMessageLength is the hard cap on the message body. Enforced identically
// on the client wrapper and on the server, which stays authoritative.
const MaxMessageLength = 5000

// Stable, user-facing error strings. Inline form errors and 400 responses
// reuse these verbatim.
const (
	ErrNameRequired    = "Name is required"
	ErrEmailRequired   = "Email is required"
	ErrEmailInvalid    = "Please enter a valid email address"
	ErrMessageRequired = "Message is required"
	ErrMessageTooLong  = "Message too long"
	ErrServiceRequired = "Please select a service"
)

// emailRegex accepts anything shaped like local@domain.tld without
// whitespace. Deliberately loose; the provider bounces what it cannot route.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	registerValidators(v)
	return v
}

// registerValidators registers the contact-form tags on the package instance.
func registerValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_email", ContactEmail)
	_ = v.RegisterValidation("max_message", MaxMessage)
}

// ContactEmail validates the submitter address format.
func ContactEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return emailRegex.MatchString(val)
}

// MaxMessage validates the message body length cap.
func MaxMessage(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxMessageLength
}

// Result is the outcome of validating one submission.
type Result struct {
	Errors  map[string]string
	IsValid bool
}

// ValidateContact checks a submission against the required-field and format
// rules. All violations are collected, not short-circuited. The service rule
// only applies to the detailed (business inquiry) form variant.
//
// Pure and deterministic; no side effects.
func ValidateContact(req *domain.ContactRequest, detailed bool) Result {
	errs := map[string]string{}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = ErrNameRequired
	}

	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		errs["email"] = ErrEmailRequired
	case validate.Var(email, "contact_email") != nil:
		errs["email"] = ErrEmailInvalid
	}

	message := req.Message
	switch {
	case strings.TrimSpace(message) == "":
		errs["message"] = ErrMessageRequired
	case validate.Var(message, "max_message") != nil:
		errs["message"] = ErrMessageTooLong
	}

	if detailed && req.Service == nil {
		errs["service"] = ErrServiceRequired
	}

	return Result{Errors: errs, IsValid: len(errs) == 0}
}

// FirstError returns one representative field error for terse API responses,
// preferring the order the form presents the fields in.
func (r Result) FirstError() string {
	for _, field := range []string{"name", "email", "message", "service"} {
		if msg, ok := r.Errors[field]; ok {
			return msg
		}
	}
	return ""
}
