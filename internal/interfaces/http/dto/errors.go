package dto

import (
	"errors"
	"net/http"

	"github.com/podstore/backoffice/internal/domain/shared"
)

// Error codes returned in the dashboard envelope.
// Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	ErrCodeInternal      = "ERR_INTERNAL"
	ErrCodeValidation    = "ERR_VALIDATION"
	ErrCodeInvalidJSON   = "ERR_INVALID_JSON"
	ErrCodeBadRequest    = "ERR_BAD_REQUEST"
	ErrCodeUnauthorized  = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired  = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid  = "ERR_TOKEN_INVALID"
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
	ErrCodeDelivery      = "ERR_DELIVERY"
	ErrCodeRateLimited   = "ERR_RATE_LIMITED"
	ErrCodeTooLarge      = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:      http.StatusInternalServerError,
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidJSON:   http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeTokenExpired:  http.StatusUnauthorized,
	ErrCodeTokenInvalid:  http.StatusUnauthorized,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeDelivery:      http.StatusBadGateway,
	ErrCodeRateLimited:   http.StatusTooManyRequests,
	ErrCodeTooLarge:      http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes are 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// kindCodes maps each error kind to its envelope code
var kindCodes = map[shared.ErrorKind]string{
	shared.KindAuthentication: ErrCodeUnauthorized,
	shared.KindValidation:     ErrCodeValidation,
	shared.KindNotFound:       ErrCodeNotFound,
	shared.KindConflict:       ErrCodeConflict,
	shared.KindPersistence:    ErrCodeInternal,
	shared.KindDelivery:       ErrCodeDelivery,
}

// ErrorCode classifies err. A persistence error whose cause is a missing
// row or a conflict takes the cause's code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, shared.ErrAlreadyExists):
		return ErrCodeAlreadyExists
	case errors.Is(err, shared.ErrInvalidRef):
		return ErrCodeConflict
	}
	if code, ok := kindCodes[shared.KindOf(err)]; ok {
		return code
	}
	return ErrCodeInternal
}

// ErrorStatus returns the HTTP status and envelope code for err
func ErrorStatus(err error) (int, string) {
	code := ErrorCode(err)
	return GetHTTPStatus(code), code
}
