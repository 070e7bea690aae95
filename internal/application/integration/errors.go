package integration

import "github.com/podstore/backoffice/internal/domain/shared"

// Marketplace errors. Their messages are returned to the caller as-is.
var (
	ErrCredentialsRequired = shared.NewDomainError(shared.KindValidation, "CREDENTIALS_REQUIRED", "Email y contraseña son requeridos")
	ErrUserNotFound        = shared.NewDomainError(shared.KindNotFound, "USER_NOT_FOUND", "Usuario no encontrado")
	ErrWrongPassword       = shared.NewAuthenticationError("WRONG_PASSWORD", "Contraseña incorrecta")
	ErrInternal            = shared.NewDomainError(shared.KindPersistence, "INTERNAL_ERROR", "Error interno del servidor")
	ErrOrderRegistered     = shared.NewDomainError(shared.KindConflict, "ORDER_ALREADY_REGISTERED", "La orden ya fue registrada")
	ErrTicketFetch         = shared.NewDomainError(shared.KindPersistence, "TICKET_FETCH_FAILED", "Failed to fetch orders or send emails")
)

// internalError wraps cause so the caller sees ErrInternal's message
func internalError(base *shared.DomainError, cause error) *shared.DomainError {
	return &shared.DomainError{
		Kind:    base.Kind,
		Code:    base.Code,
		Message: base.Message,
		Err:     cause,
	}
}
