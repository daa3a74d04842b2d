package payments

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway is the provider-facing side of a mobile-money push. The provider
// answers synchronously with an acknowledgement and reports the real outcome
// later through the callback endpoint.
type Gateway interface {
	Push(ctx context.Context, phoneNumber string, amount decimal.Decimal) (*PushAck, error)
}

type momoGateway struct {
	shortCode   string
	passkey     string
	baseURL     string
	callbackURL string
}

// NewMomoGateway creates the mobile-money push adapter.
func NewMomoGateway(shortCode, passkey, baseURL, callbackURL string) Gateway {
	return &momoGateway{shortCode: shortCode, passkey: passkey, baseURL: baseURL, callbackURL: callbackURL}
}

func (g *momoGateway) Push(ctx context.Context, phoneNumber string, amount decimal.Decimal) (*PushAck, error) {
	if phoneNumber == "" {
		return nil, fmt.Errorf("phone_number is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be greater than 0")
	}

	// ── PRODUCTION INTEGRATION POINT ──────────────────────────────────────
	// Replace this block with the provider's STK push call:
	//
	// 1. POST /oauth/v1/generate — get bearer token from shortCode+passkey
	// 2. POST /stkpush/v1/processrequest — push the prompt to the handset
	//    Body: { BusinessShortCode, Password, Timestamp, Amount, PartyA,
	//            CallBackURL: g.callbackURL, ... }
	// 3. Store MerchantRequestID from the response
	// ──────────────────────────────────────────────────────────────────────

	// Sandbox stub: simulate async acceptance
	ref := fmt.Sprintf("MRQ-%s-%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
	return &PushAck{
		MerchantRequestID: ref,
		CustomerMessage:   fmt.Sprintf("Payment request sent to %s. Awaiting PIN confirmation.", phoneNumber),
	}, nil
}
