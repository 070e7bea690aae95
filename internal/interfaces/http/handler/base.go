package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/infrastructure/logger"
	"github.com/podstore/backoffice/internal/interfaces/http/dto"
	"github.com/podstore/backoffice/internal/interfaces/http/middleware"
)

// BaseHandler provides the dashboard envelope helpers
type BaseHandler struct{}

// Success sends a 200 envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error envelope with the given status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 400 envelope listing the invalid fields
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError maps err to its status and sends the envelope.
// 5xx causes are logged; the message is always the DomainError's.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	status, code := dto.ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("Request failed", zap.Error(err))
	}
	_ = c.Error(err)
	h.Error(c, status, code, errorMessage(err))
}

// errorMessage hides untyped errors behind a generic message
func errorMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err.Error()
	}
	return "Error interno del servidor"
}

// parseID reads the :id path parameter as a positive integer
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
