package apperror

import "net/http"

// Kind is a machine-readable error classification. Clients branch on Kind
// instead of pattern-matching message text.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindConfig     Kind = "CONFIG_ERROR"
	KindTransient  Kind = "TRANSIENT"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Title returns the short error label used in response bodies.
func (e *AppError) Title() string {
	switch e.Kind {
	case KindValidation:
		return "Validation error"
	case KindConfig:
		return "Server configuration error"
	default:
		return "Failed to send email"
	}
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

func Config(message string, err error) *AppError {
	return New(http.StatusInternalServerError, KindConfig, message, err)
}

func Internal(message string, err error) *AppError {
	return New(http.StatusInternalServerError, KindTransient, message, err)
}
