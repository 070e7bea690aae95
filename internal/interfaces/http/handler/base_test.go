package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/interfaces/http/dto"
	"github.com/podstore/backoffice/tests/testutil"
)

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	tc := testutil.NewTestContext(t)

	h.Success(tc.Context, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, tc.ResponseCode())
	resp := testutil.AssertSuccessResponse(t, tc.Recorder)
	assert.Equal(t, map[string]any{"key": "value"}, resp["data"])
}

func TestBaseHandlerCreated(t *testing.T) {
	h := &BaseHandler{}
	tc := testutil.NewTestContext(t)

	h.Created(tc.Context, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, tc.ResponseCode())
	testutil.AssertSuccessResponse(t, tc.Recorder)
}

func TestBaseHandlerBadRequest(t *testing.T) {
	h := &BaseHandler{}
	tc := testutil.NewTestContext(t)
	tc.SetRequestID("req-7")

	h.BadRequest(tc.Context, "ID inválido")

	assert.Equal(t, http.StatusBadRequest, tc.ResponseCode())
	errMap := testutil.AssertErrorResponse(t, tc.Recorder, dto.ErrCodeBadRequest)
	assert.Equal(t, "ID inválido", errMap["message"])
	assert.Equal(t, "req-7", errMap["request_id"])
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "missing row",
			err:     shared.NewPersistenceError("eliminar el producto", shared.ErrNotFound),
			status:  http.StatusNotFound,
			code:    dto.ErrCodeNotFound,
			message: "Error al eliminar el producto: registro no encontrado",
		},
		{
			name:    "duplicate",
			err:     shared.NewPersistenceError("crear el usuario", shared.ErrAlreadyExists),
			status:  http.StatusConflict,
			code:    dto.ErrCodeAlreadyExists,
			message: "Error al crear el usuario: el registro ya existe",
		},
		{
			name:    "store failure",
			err:     shared.NewPersistenceError("obtener los productos", errors.New("connection refused")),
			status:  http.StatusInternalServerError,
			code:    dto.ErrCodeInternal,
			message: "Error al obtener los productos: connection refused",
		},
		{
			name:    "untyped error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrCodeInternal,
			message: "Error interno del servidor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			tc := testutil.NewTestContext(t)

			h.HandleError(tc.Context, tt.err)

			assert.Equal(t, tt.status, tc.ResponseCode())
			errMap := testutil.AssertErrorResponse(t, tc.Recorder, tt.code)
			assert.Equal(t, tt.message, errMap["message"])
		})
	}
}

func TestBaseHandlerHandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	tc := testutil.NewTestContext(t)

	h.HandleError(tc.Context, nil)

	assert.Empty(t, tc.ResponseBody())
}
