package usecase

import (
	"strings"
	"time"

	domainErrors "github.com/polkiloo/gophershop/internal/domain/errors"
	"github.com/polkiloo/gophershop/internal/domain/model"
)

// ReconcileInvoice decides how an invoice status reported by the gateway
// changes a payment and its order.
func ReconcileInvoice(payment model.Payment, order model.Order, invoice model.Invoice, now time.Time) (*model.PaymentSettlement, error) {
	if payment.Status.Processed() {
		return nil, domainErrors.ErrPaymentAlreadyProcessed
	}

	switch invoice.Status {
	case model.InvoiceStatusPaid, model.InvoiceStatusSettled:
		paidAt := now
		if invoice.PaidAt != nil {
			paidAt = *invoice.PaidAt
		}
		status := model.PaymentStatusPaid
		if invoice.Status == model.InvoiceStatusSettled {
			status = model.PaymentStatusSettled
		}
		method, reference := paymentChannel(invoice)
		return &model.PaymentSettlement{
			PaymentStatus: status,
			OrderStatus:   model.OrderStatusPaymentReceived,
			Method:        method,
			Reference:     reference,
			PaidAt:        &paidAt,
		}, nil
	case model.InvoiceStatusExpired:
		return &model.PaymentSettlement{
			PaymentStatus: model.PaymentStatusExpired,
			OrderStatus:   model.OrderStatusFailed,
			RestoreStock:  true,
		}, nil
	default:
		return nil, domainErrors.ErrUnsupportedPaymentStatus
	}
}

func paymentChannel(invoice model.Invoice) (method, reference string) {
	switch invoice.PaymentMethod {
	case model.MethodBankTransfer:
		return "bank_transfer_" + strings.ToLower(invoice.BankCode), invoice.PaymentDestination
	case model.MethodEwallet:
		return "ewallet_" + strings.ToLower(invoice.EwalletType), invoice.PaymentID
	case model.MethodRetailOutlet:
		return "retail_" + strings.ToLower(invoice.RetailOutletName), invoice.PaymentDestination
	case model.MethodQRCode:
		return "qris", invoice.PaymentID
	case model.MethodCreditCard:
		return "credit_card", invoice.PaymentID
	}
	if invoice.PaymentChannel != "" {
		return strings.ToLower(invoice.PaymentChannel), invoice.PaymentID
	}
	return strings.ToLower(invoice.PaymentMethod), invoice.PaymentID
}

var refundFailureMessages = map[string]string{
	"ACCOUNT_ACCESS_BLOCKED":     "Akun tujuan refund diblokir",
	"ACCOUNT_NOT_FOUND":          "Akun tujuan refund tidak ditemukan",
	"DUPLICATE_ERROR":            "Refund dengan referensi yang sama sudah diproses",
	"INSUFFICIENT_BALANCE":       "Saldo merchant tidak mencukupi untuk refund",
	"REFUND_FAILED":              "Refund ditolak oleh penyedia pembayaran",
	"REFUND_NOT_SUPPORTED":       "Metode pembayaran tidak mendukung refund",
	"REFUND_PERIOD_EXPIRED":      "Batas waktu refund telah terlewati",
	"CHANNEL_UNAVAILABLE":        "Kanal pembayaran sedang tidak tersedia",
	"INVALID_REFUND_AMOUNT":      "Nominal refund tidak valid",
	"TRANSACTION_NOT_REFUNDABLE": "Transaksi tidak dapat direfund",
}

const defaultRefundFailureMessage = "Refund gagal diproses"

// RefundFailureMessage translates a gateway failure code for customers.
func RefundFailureMessage(code string) string {
	if msg, ok := refundFailureMessages[strings.ToUpper(code)]; ok {
		return msg
	}
	return defaultRefundFailureMessage
}

// SettleRefund decides how a refund callback changes a refund, its payment
// and order. Only approved refunds accept callbacks, and a successful refund
// cancels the order only while it is still refundable.
func SettleRefund(refund model.Refund, order model.Order, event model.RefundEvent) (*model.RefundSettlement, error) {
	if refund.Status != model.RefundStatusApproved {
		return nil, domainErrors.ErrRefundNotApproved
	}

	if event.Status == model.RefundEventSucceeded {
		if !order.Status.Refundable() {
			return nil, domainErrors.ErrRefundNotAllowed
		}
		paymentStatus := model.PaymentStatusRefunded
		orderStatus := model.OrderStatusCanceled
		return &model.RefundSettlement{
			RefundStatus:  model.RefundStatusSucceeded,
			PaymentStatus: &paymentStatus,
			OrderStatus:   &orderStatus,
			RestoreStock:  true,
		}, nil
	}

	return &model.RefundSettlement{
		RefundStatus:  model.RefundStatusFailed,
		FailureCode:   event.FailureCode,
		FailureReason: RefundFailureMessage(event.FailureCode),
	}, nil
}
