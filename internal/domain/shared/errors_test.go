package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPersistenceError(t *testing.T) {
	t.Run("prefixes the cause message", func(t *testing.T) {
		err := NewPersistenceError("eliminar el producto", errors.New("connection refused"))

		assert.Equal(t, "Error al eliminar el producto: connection refused", err.Error())
		assert.Equal(t, KindPersistence, err.Kind)
	})

	t.Run("falls back when the cause has no message", func(t *testing.T) {
		err := NewPersistenceError("crear el usuario", nil)

		assert.Equal(t, "Error desconocido al crear el usuario", err.Error())
	})

	t.Run("keeps sentinel reachable through the chain", func(t *testing.T) {
		err := NewPersistenceError("obtener el pedido", ErrNotFound)

		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrAlreadyExists))
	})
}

func TestDomainError_Is(t *testing.T) {
	wrapped := fmt.Errorf("repo: %w", ErrAlreadyExists)
	assert.True(t, errors.Is(wrapped, ErrAlreadyExists))

	authErr := NewAuthenticationError("TOKEN_MISSING", "Token no proporcionado")
	assert.True(t, errors.Is(authErr, ErrUnauthorized))
	assert.Equal(t, KindAuthentication, KindOf(authErr))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(NewValidationError("bad")))
	assert.Equal(t, KindDelivery, KindOf(NewDeliveryError(errors.New("smtp down"))))
	assert.Equal(t, KindPersistence, KindOf(errors.New("plain")))
}
