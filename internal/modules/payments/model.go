package payments

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PushStatus is the lifecycle of a mobile-money push request.
type PushStatus string

const (
	PushPending   PushStatus = "PENDING"
	PushCompleted PushStatus = "COMPLETED"
	PushFailed    PushStatus = "FAILED"
)

// PushTransaction records one mobile-money push and, later, its callback.
// Payment confirmation is deliberately decoupled from sale commit: a callback
// updates this record only, never stock or sales.
type PushTransaction struct {
	ID                 uuid.UUID       `json:"id"`
	PhoneNumber        string          `json:"phone_number"`
	Amount             decimal.Decimal `json:"amount"`
	MerchantRequestID  string          `json:"merchant_request_id"`
	Status             PushStatus      `json:"status"`
	ResultCode         *int            `json:"result_code,omitempty"`
	ResultDesc         string          `json:"result_desc,omitempty"`
	ReceiptNumber      string          `json:"receipt_number,omitempty"`
	CallbackPayload    json.RawMessage `json:"callback_payload,omitempty"` // verbatim, for audit
	CallbackReceivedAt *time.Time      `json:"callback_received_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// InitiatePushRequest is the payload to push a payment prompt to a phone.
type InitiatePushRequest struct {
	PhoneNumber string          `json:"phone_number"`
	Amount      decimal.Decimal `json:"amount"`
}

// PushAck is the synchronous acknowledgement from the provider.
type PushAck struct {
	MerchantRequestID string `json:"merchant_request_id"`
	CustomerMessage   string `json:"customer_message,omitempty"`
}

// CallbackPayload is the asynchronous provider result. ResultCode 0 means
// the customer approved and the money moved; anything else is a failure.
type CallbackPayload struct {
	MerchantRequestID string          `json:"merchant_request_id"`
	ResultCode        int             `json:"result_code"`
	ResultDesc        string          `json:"result_desc"`
	ReceiptNumber     string          `json:"receipt_number,omitempty"`
	Amount            decimal.Decimal `json:"amount,omitempty"`
	PhoneNumber       string          `json:"phone_number,omitempty"`
}
