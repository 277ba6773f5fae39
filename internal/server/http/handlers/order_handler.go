package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gophershop/internal/server/http/dto"
)

// OrderHandler manages customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/orders/:number.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Cancel handles POST /api/orders/:number/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	if err := h.facade.CancelOrder(c.Request.Context(), CurrentUserID(c), c.Param("number")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Pesanan berhasil dibatalkan")
}

// Complete handles POST /api/orders/:number/complete.
func (h *OrderHandler) Complete(c *gin.Context) {
	if err := h.facade.CompleteOrder(c.Request.Context(), CurrentUserID(c), c.Param("number")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Pesanan telah diterima")
}

// RequestRefund handles POST /api/orders/:number/refund.
func (h *OrderHandler) RequestRefund(c *gin.Context) {
	var req dto.RefundRequest
	if !bindJSON(c, &req) {
		return
	}
	refund, err := h.facade.RequestRefund(c.Request.Context(), CurrentUserID(c), c.Param("number"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRefundResponse(*refund))
}
