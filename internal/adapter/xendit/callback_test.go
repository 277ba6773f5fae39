package xendit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/gophershop/internal/domain/model"
)

func TestRefundCallbackEvent(t *testing.T) {
	body := `{
		"event": "refund.failed",
		"data": {
			"id": "rfd-1",
			"reference_id": "3f0c6a8e-3a0b-4c8e-9a57-2f3cf7c1b2a1",
			"invoice_id": "inv-1",
			"amount": 150000.00,
			"status": "FAILED",
			"failure_code": "INSUFFICIENT_BALANCE"
		}
	}`

	var callback RefundCallback
	require.NoError(t, json.Unmarshal([]byte(body), &callback))

	event := callback.RefundEvent()
	assert.Equal(t, "refund.failed", callback.Event)
	assert.Equal(t, model.RefundEvent{
		ID:          "rfd-1",
		ReferenceID: "3f0c6a8e-3a0b-4c8e-9a57-2f3cf7c1b2a1",
		InvoiceID:   "inv-1",
		Amount:      150000,
		Status:      model.RefundEventFailed,
		FailureCode: "INSUFFICIENT_BALANCE",
	}, event)
}

func TestInvoiceCallbackPayload(t *testing.T) {
	body := `{
		"id": "inv-1",
		"external_id": "202406010000001",
		"status": "PAID",
		"amount": 250000,
		"paid_amount": 250000,
		"payment_method": "EWALLET",
		"payment_channel": "OVO",
		"ewallet_type": "OVO"
	}`

	var payload InvoicePayload
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	invoice := payload.Invoice()
	assert.Equal(t, "202406010000001", invoice.ExternalID)
	assert.Equal(t, model.InvoiceStatusPaid, invoice.Status)
	assert.Equal(t, int64(250000), invoice.PaidAmount)
	assert.Equal(t, "OVO", invoice.EwalletType)
}
