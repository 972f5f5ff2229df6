// Package payments authenticates payment-gateway callbacks before any funds
// are credited. Verification is a pure check; the caller owns the state
// mutation and must guarantee at-most-once crediting per payment id (a unique
// constraint on payment_id is the expected mechanism), because the gateway
// retries callbacks on network failure.
package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Callback is the signed payload the gateway posts after a checkout.
type Callback struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// VerifySignature checks the Razorpay callback signature: the hex-encoded
// HMAC-SHA256 of "orderID|paymentID" under the server-held secret must equal
// the supplied signature exactly. Any mismatch is terminal; the callback must
// be rejected with no state change and never retried.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Verify is VerifySignature over a decoded callback payload.
func Verify(cb Callback, secret string) bool {
	return VerifySignature(cb.OrderID, cb.PaymentID, cb.Signature, secret)
}
