package xendit

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

// CallbackTokenHeader carries the verification token Xendit sends with every callback.
const CallbackTokenHeader = "X-CALLBACK-TOKEN"

// RefundCallback is the envelope of refund.succeeded and refund.failed events.
type RefundCallback struct {
	Event string `json:"event"`
	Data  struct {
		ID          string          `json:"id"`
		ReferenceID string          `json:"reference_id"`
		InvoiceID   string          `json:"invoice_id"`
		Amount      decimal.Decimal `json:"amount"`
		Status      string          `json:"status"`
		FailureCode string          `json:"failure_code"`
	} `json:"data"`
}

// RefundEvent converts the callback into the domain view.
func (c RefundCallback) RefundEvent() model.RefundEvent {
	return model.RefundEvent{
		ID:          c.Data.ID,
		ReferenceID: c.Data.ReferenceID,
		InvoiceID:   c.Data.InvoiceID,
		Amount:      c.Data.Amount.Round(0).IntPart(),
		Status:      model.RefundEventStatus(c.Data.Status),
		FailureCode: c.Data.FailureCode,
	}
}
