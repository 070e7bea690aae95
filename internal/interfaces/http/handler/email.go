package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podstore/backoffice/internal/application/notification"
	"github.com/podstore/backoffice/internal/interfaces/http/dto"
	"github.com/podstore/backoffice/internal/interfaces/http/middleware"
)

// Email endpoint messages
const (
	MsgEmailSent   = "Correo enviado exitosamente"
	MsgEmailFailed = "Error al enviar el correo"
)

// EmailHandler sends dashboard-composed emails
type EmailHandler struct {
	emailService *notification.EmailService
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(emailService *notification.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

// Send godoc
// @Summary      Send an email
// @Description  Delivery failures answer 200 with success=false
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        request body notification.SendEmailRequest true "Email"
// @Success      200 {object} dto.EmailResult
// @Failure      400 {object} dto.EmailResult
// @Router       /send-email [post]
func (h *EmailHandler) Send(c *gin.Context) {
	var req notification.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.EmailResult{Success: false, Message: invalidEmailMessage(err)})
		return
	}

	if err := h.emailService.Send(c.Request.Context(), req.To, req.Subject, req.HTML); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusOK, dto.EmailResult{Success: false, Message: MsgEmailFailed})
		return
	}
	c.JSON(http.StatusOK, dto.EmailResult{Success: true, Message: MsgEmailSent})
}

// SendOrderSummary godoc
// @Summary      Send an order summary
// @Description  Renders the "Resumen de su pedido" table and mails it to recipientEmail
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        request body notification.OrderSummaryRequest true "Summary"
// @Success      200 {object} dto.EmailResult
// @Failure      400 {object} dto.EmailResult
// @Failure      502 {object} dto.EmailResult
// @Router       /email/order-summary [post]
func (h *EmailHandler) SendOrderSummary(c *gin.Context) {
	var req notification.OrderSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.EmailResult{Success: false, Message: invalidEmailMessage(err)})
		return
	}

	err := h.emailService.SendOrderSummary(c.Request.Context(), req.RecipientEmail, req.Lines(), req.Total())
	if err != nil {
		status, _ := dto.ErrorStatus(err)
		_ = c.Error(err)
		c.JSON(status, dto.EmailResult{Success: false, Message: MsgEmailFailed})
		return
	}
	c.JSON(http.StatusOK, dto.EmailResult{Success: true, Message: MsgEmailSent})
}

// invalidEmailMessage names the first invalid field
func invalidEmailMessage(err error) string {
	details := middleware.ValidationDetails(err)
	if len(details) == 0 {
		return middleware.ValidationMessage
	}
	return details[0].Field + ": " + details[0].Message
}
