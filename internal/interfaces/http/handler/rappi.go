package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/podstore/backoffice/internal/application/integration"
	"github.com/podstore/backoffice/internal/domain/shared"
	"github.com/podstore/backoffice/internal/infrastructure/logger"
	"github.com/podstore/backoffice/internal/interfaces/http/dto"
	"github.com/podstore/backoffice/internal/interfaces/http/middleware"
)

// Marketplace response messages
const (
	MsgOrderCreated = "Nueva orden"
	MsgOrderInvalid = "Datos de la orden inválidos"
)

// RappiHandler serves the marketplace token exchange and the order webhook.
// Its responses are flat JSON bodies, not the dashboard envelope.
type RappiHandler struct {
	auth      *integration.MarketplaceAuthService
	ingestion *integration.OrderIngestionService
}

// NewRappiHandler creates a new RappiHandler
func NewRappiHandler(auth *integration.MarketplaceAuthService, ingestion *integration.OrderIngestionService) *RappiHandler {
	return &RappiHandler{auth: auth, ingestion: ingestion}
}

// Authenticate godoc
// @Summary      Exchange credentials for a marketplace token
// @Description  Accepts the login as "email" or "user". The token is also returned in the user-token header.
// @Tags         rappi
// @Accept       json
// @Produce      json
// @Param        request body integration.AuthRequest true "Credentials"
// @Success      200 {object} dto.TokenResponse
// @Failure      400 {object} dto.MarketplaceError
// @Failure      401 {object} dto.MarketplaceError
// @Failure      404 {object} dto.MarketplaceError
// @Failure      429 {object} dto.MarketplaceError
// @Router       /turbo-rappi [post]
func (h *RappiHandler) Authenticate(c *gin.Context) {
	var req integration.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MarketplaceError{Error: integration.ErrCredentialsRequired.Message})
		return
	}

	token, err := h.auth.Authenticate(c.Request.Context(), req)
	if err != nil {
		marketplaceError(c, err)
		return
	}

	c.Header(middleware.MarketplaceTokenHeader, token.Token)
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token.Token})
}

// ReceiveOrder godoc
// @Summary      Receive a marketplace order
// @Description  Stores the order for the user named by the token and mails the customer a confirmation
// @Tags         rappi
// @Accept       json
// @Produce      json
// @Param        user-token header string true "Marketplace token"
// @Param        request body integration.OrderPayload true "Order"
// @Success      201 {object} dto.OrderCreatedResponse
// @Failure      400 {object} dto.MarketplaceError
// @Failure      401 {object} dto.MarketplaceError
// @Failure      409 {object} dto.MarketplaceError
// @Router       /turbo-rappi/orders [post]
func (h *RappiHandler) ReceiveOrder(c *gin.Context) {
	var payload integration.OrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, dto.MarketplaceError{
			Error:   MsgOrderInvalid,
			Details: middleware.ValidationDetails(err),
		})
		return
	}

	result, err := h.ingestion.Ingest(c.Request.Context(), middleware.GetUserID(c), payload)
	if err != nil {
		marketplaceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OrderCreatedResponse{
		Message:      MsgOrderCreated,
		Order:        result.Order,
		EmailWarning: result.EmailWarning,
	})
}

// marketplaceError writes err as {"error": message} with its mapped status
func marketplaceError(c *gin.Context, err error) {
	status, _ := dto.ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("Marketplace request failed", zap.Error(err))
	}
	_ = c.Error(err)

	msg := integration.ErrInternal.Message
	var de *shared.DomainError
	if errors.As(err, &de) && status < http.StatusInternalServerError {
		msg = de.Message
	}
	c.JSON(status, dto.MarketplaceError{Error: msg})
}
