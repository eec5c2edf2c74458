// Package gateway simulates a Razorpay-style payment gateway. No real
// provider is integrated; orders are minted locally and signatures are
// computed with the configured key secret, so the verify path exercises the
// same HMAC check a real integration would.
package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Order is the gateway-side payment order returned to clients. Amount is in
// paise, matching the provider convention.
type Order struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// Gateway mints orders and verifies payment signatures.
type Gateway struct {
	keyID     string
	keySecret string
	now       func() time.Time
}

func New(keyID, keySecret string) *Gateway {
	return &Gateway{keyID: keyID, keySecret: keySecret, now: time.Now}
}

// KeyID returns the public key id handed to clients for checkout.
func (g *Gateway) KeyID() string { return g.keyID }

// CreateOrder mints a gateway order for the given amount in rupees.
func (g *Gateway) CreateOrder(amountINR float64, currency, receipt string) Order {
	ts := g.now().UnixMilli()
	return Order{
		ID:        fmt.Sprintf("order_%d", ts),
		Amount:    int64(amountINR * 100),
		Currency:  currency,
		Receipt:   receipt,
		Status:    "created",
		CreatedAt: ts / 1000,
	}
}

// Sign computes the checkout signature over "orderID|paymentID".
func (g *Gateway) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches orderID|paymentID.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	expected := g.Sign(orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
