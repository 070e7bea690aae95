package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/podstore/backoffice/internal/domain/identity"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/interfaces/http/dto"
)

// ValidationMessage is the top-level message of a 400 caused by a bad body
const ValidationMessage = "Datos de entrada inválidos"

var setupOnce sync.Once

// SetupValidator configures gin's validator: JSON field names in errors,
// decimal and Optional fields exposed to the numeric and string rules,
// and the role, rfc3339 and present tags.
//
// A set Optional is handed to the validator as a pointer, so omitempty skips
// only absent fields: "" and null still have to satisfy min, email and role.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})

		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			d, ok := field.Interface().(decimal.Decimal)
			if !ok {
				return nil
			}
			return d.InexactFloat64()
		}, decimal.Decimal{})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			o, ok := field.Interface().(shared.Optional[decimal.Decimal])
			if !ok {
				return nil
			}
			if d, set := o.Get(); set {
				f := d.InexactFloat64()
				return &f
			}
			return nil
		}, shared.Optional[decimal.Decimal]{})
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			o, ok := field.Interface().(shared.Optional[string])
			if !ok {
				return nil
			}
			if s, set := o.Get(); set {
				return &s
			}
			return nil
		}, shared.Optional[string]{})

		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			return identity.Role(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("rfc3339", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(time.RFC3339Nano, fl.Field().String())
			return err == nil
		})
		// present fails only on a nil pointer; zero amounts are valid
		_ = v.RegisterValidation("present", func(validator.FieldLevel) bool {
			return true
		})
	})
}

// ValidationDetails turns a binding error into per-field details.
// Malformed JSON yields a single detail for the offending field or "body".
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]dto.ValidationDetail, 0, len(validationErrors))
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   fieldPath(e),
				Message: getValidationMessage(e),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []dto.ValidationDetail{{Field: field, Message: "tipo de dato inválido"}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []dto.ValidationDetail{{Field: "body", Message: "JSON inválido"}}
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return []dto.ValidationDetail{{Field: "body", Message: "el cuerpo excede el tamaño permitido"}}
	}

	return []dto.ValidationDetail{{Field: "body", Message: err.Error()}}
}

// FormatValidationErrors formats a binding error into the envelope
func FormatValidationErrors(err error, requestID string) dto.Response {
	return dto.NewValidationErrorResponse(ValidationMessage, requestID, ValidationDetails(err))
}

// HandleValidationError answers 400 with the envelope
func HandleValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// fieldPath drops the root struct name: "OrderPayload.items[0].price" -> "items[0].price"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "present":
		return "este campo es requerido"
	case "email":
		return "formato de correo inválido"
	case "min":
		if e.Kind() == reflect.String {
			return "debe tener al menos " + e.Param() + " caracteres"
		}
		if e.Kind() == reflect.Slice {
			return "debe contener al menos " + e.Param() + " elemento(s)"
		}
		return "debe ser mayor o igual a " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "debe tener como máximo " + e.Param() + " caracteres"
		}
		return "debe ser menor o igual a " + e.Param()
	case "gt":
		return "debe ser mayor que " + e.Param()
	case "gte":
		return "debe ser mayor o igual a " + e.Param()
	case "role":
		return "rol inválido, use USER o ADMIN"
	case "rfc3339":
		return "fecha inválida, use el formato ISO 8601"
	case "oneof":
		return "debe ser uno de: " + e.Param()
	default:
		return "valor inválido"
	}
}
