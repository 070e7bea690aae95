package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podstore/backoffice/internal/application/integration"
	tradeapp "github.com/podstore/backoffice/internal/application/trade"
	"github.com/podstore/backoffice/internal/interfaces/http/dto"
	"github.com/podstore/backoffice/internal/interfaces/http/middleware"
)

// OrderHandler handles the dashboard order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
	ticketSync   *integration.TicketSyncService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService, ticketSync *integration.TicketSyncService) *OrderHandler {
	return &OrderHandler{orderService: orderService, ticketSync: ticketSync}
}

// List godoc
// @Summary      List orders for display
// @Description  Every order with its lines, dates in Mexico City time and totals in MXN
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tradeapp.FormattedOrder}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.ListFormatted(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Create godoc
// @Summary      Local checkout
// @Description  Create an order from catalog products; line prices come from the catalog
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateOrderRequest true "Checkout"
// @Success      201 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID de pedido inválido")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete an order
// @Description  Removes the order and its lines; returns the removed order
// @Tags         orders
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "ID de pedido inválido")
		return
	}

	order, err := h.orderService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// SyncTickets godoc
// @Summary      Send tickets for marketplace orders
// @Description  Fetches marketplace orders, mails a ticket for each successful one and archives it
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.TicketSyncResponse
// @Failure      500 {object} dto.TicketSyncResponse
// @Security     BearerAuth
// @Router       /dashboard/orders/sync-tickets [post]
func (h *OrderHandler) SyncTickets(c *gin.Context) {
	result, err := h.ticketSync.Sync(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": integration.ErrTicketFetch.Message})
		return
	}
	c.JSON(http.StatusOK, dto.TicketSyncResponse{
		Message: "Emails sent successfully",
		Sent:    result.Sent,
		Failed:  result.Failed,
	})
}
