package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gophershop/internal/adapter/xendit"
	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
)

// WebhookHandler applies Xendit invoice and refund callbacks.
type WebhookHandler struct {
	facade WebhookFacade
	logger *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, logger: logger}
}

// Invoice handles POST /api/webhooks/xendit/invoice.
func (h *WebhookHandler) Invoice(c *gin.Context) {
	var payload xendit.InvoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMessage(c, http.StatusBadRequest, "Payload callback tidak valid")
		return
	}

	if err := h.facade.HandleInvoice(c.Request.Context(), payload.Invoice()); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			respondMessage(c, http.StatusNotFound, "Pembayaran tidak ditemukan")
		case errors.Is(err, domainErrors.ErrPaymentAlreadyProcessed):
			respondMessage(c, http.StatusBadRequest, "Pembayaran sudah diproses")
		case errors.Is(err, domainErrors.ErrUnsupportedPaymentStatus):
			respondMessage(c, http.StatusBadRequest, "Status pembayaran tidak dikenali")
		default:
			h.logger.Error("invoice callback failed",
				slog.String("order", payload.ExternalID),
				slog.String("invoice", payload.ID),
				slog.String("status", payload.Status),
				slog.String("error", err.Error()),
			)
			respondMessage(c, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	respondMessage(c, http.StatusOK, "Status pembayaran berhasil diperbarui")
}

// Refund handles POST /api/webhooks/xendit/refund.
func (h *WebhookHandler) Refund(c *gin.Context) {
	var payload xendit.RefundCallback
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMessage(c, http.StatusBadRequest, "Payload callback tidak valid")
		return
	}

	event := payload.RefundEvent()
	if err := h.facade.HandleRefund(c.Request.Context(), event); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			respondMessage(c, http.StatusNotFound, "Refund tidak ditemukan")
		case errors.Is(err, domainErrors.ErrRefundNotApproved):
			respondMessage(c, http.StatusBadRequest, "Refund tidak menunggu konfirmasi")
		case errors.Is(err, domainErrors.ErrRefundNotAllowed):
			h.logger.Warn("refund callback for order past fulfilment",
				slog.String("reference", event.ReferenceID),
				slog.String("refund", event.ID),
			)
			respondMessage(c, http.StatusBadRequest, "Pesanan sudah dikirim, refund tidak dapat diterapkan")
		default:
			h.logger.Error("refund callback failed",
				slog.String("reference", event.ReferenceID),
				slog.String("refund", event.ID),
				slog.String("status", string(event.Status)),
				slog.String("error", err.Error()),
			)
			respondMessage(c, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	respondMessage(c, http.StatusOK, "Status refund berhasil diperbarui")
}
