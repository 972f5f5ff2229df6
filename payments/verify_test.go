package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// TestVerifySignature_Accepts tests the correct digest is accepted
func TestVerifySignature_Accepts(t *testing.T) {
	secret := "test_secret_key"
	sig := sign("order_abc123", "pay_xyz789", secret)

	assert.True(t, VerifySignature("order_abc123", "pay_xyz789", sig, secret))
}

// TestVerifySignature_RejectsBitFlip tests any single flipped hex digit fails
func TestVerifySignature_RejectsBitFlip(t *testing.T) {
	secret := "test_secret_key"
	sig := sign("order_abc123", "pay_xyz789", secret)

	for i := 0; i < len(sig); i++ {
		flipped := []byte(sig)
		if flipped[i] == '0' {
			flipped[i] = '1'
		} else {
			flipped[i] = '0'
		}
		assert.False(t, VerifySignature("order_abc123", "pay_xyz789", string(flipped), secret),
			"flipped digit at %d must be rejected", i)
	}
}

// TestVerifySignature_RejectsWrongInputs tests signatures do not transfer
// across orders, payments or secrets
func TestVerifySignature_RejectsWrongInputs(t *testing.T) {
	secret := "test_secret_key"
	sig := sign("order_abc123", "pay_xyz789", secret)

	assert.False(t, VerifySignature("order_other", "pay_xyz789", sig, secret))
	assert.False(t, VerifySignature("order_abc123", "pay_other", sig, secret))
	assert.False(t, VerifySignature("order_abc123", "pay_xyz789", sig, "other_secret"))
	assert.False(t, VerifySignature("order_abc123", "pay_xyz789", "", secret))
}

// TestVerify_Callback tests verification over a decoded payload
func TestVerify_Callback(t *testing.T) {
	secret := "test_secret_key"
	cb := Callback{
		OrderID:   "order_abc123",
		PaymentID: "pay_xyz789",
	}
	cb.Signature = sign(cb.OrderID, cb.PaymentID, secret)

	assert.True(t, Verify(cb, secret))

	cb.Signature = "deadbeef"
	assert.False(t, Verify(cb, secret))
}
