package shared

import "errors"

// ErrorKind is the closed set of failure categories a DomainError can carry.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "AUTHENTICATION"
	KindValidation     ErrorKind = "VALIDATION"
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindConflict       ErrorKind = "CONFLICT"
	KindPersistence    ErrorKind = "PERSISTENCE"
	KindDelivery       ErrorKind = "DELIVERY"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code so wrapped sentinels still compare equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound       = NewDomainError(KindNotFound, "NOT_FOUND", "registro no encontrado")
	ErrAlreadyExists  = NewDomainError(KindConflict, "ALREADY_EXISTS", "el registro ya existe")
	ErrInvalidInput   = NewDomainError(KindValidation, "INVALID_INPUT", "datos inválidos")
	ErrInvalidRef     = NewDomainError(KindConflict, "INVALID_REFERENCE", "violación de integridad referencial")
	ErrUnauthorized   = NewDomainError(KindAuthentication, "UNAUTHORIZED", "no autorizado")
	ErrDeliveryFailed = NewDomainError(KindDelivery, "DELIVERY_FAILED", "Error al enviar el correo")
)

// NewPersistenceError wraps a store failure for the given action
// ("eliminar el producto", "crear el usuario", ...).
func NewPersistenceError(action string, cause error) *DomainError {
	msg := "Error desconocido al " + action
	if cause != nil && cause.Error() != "" {
		msg = "Error al " + action + ": " + cause.Error()
	}
	return &DomainError{
		Kind:    KindPersistence,
		Code:    "PERSISTENCE_ERROR",
		Message: msg,
		Err:     cause,
	}
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *DomainError {
	return &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_INPUT",
		Message: message,
		Err:     ErrInvalidInput,
	}
}

// NewAuthenticationError creates an authentication error with a specific code
func NewAuthenticationError(code, message string) *DomainError {
	return &DomainError{
		Kind:    KindAuthentication,
		Code:    code,
		Message: message,
		Err:     ErrUnauthorized,
	}
}

// NewDeliveryError wraps an email transport failure
func NewDeliveryError(cause error) *DomainError {
	return &DomainError{
		Kind:    KindDelivery,
		Code:    ErrDeliveryFailed.Code,
		Message: ErrDeliveryFailed.Message,
		Err:     cause,
	}
}

// KindOf returns the kind of the first DomainError in err's chain,
// or KindPersistence for errors that carry no kind.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindPersistence
}
