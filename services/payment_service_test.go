package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/payments"
	"github.com/devakhil7/plyr-sub003/repositories"
	"github.com/devakhil7/plyr-sub003/status"
)

const testSecret = "test_key_secret"

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type fakeBookingRepo struct {
	booking *models.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error { return nil }
func (f *fakeBookingRepo) GetByID(ctx context.Context, id int) (*models.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, repositories.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}
func (f *fakeBookingRepo) List(ctx context.Context, filter repositories.ListBookingsFilter) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, s status.BookingStatus) error {
	return nil
}
func (f *fakeBookingRepo) AddAmountPaid(ctx context.Context, exec repositories.SQLExecutor, id int, amount int64) error {
	return nil
}
func (f *fakeBookingRepo) SetPaymentOrderID(ctx context.Context, id int, orderID string) error {
	return nil
}
func (f *fakeBookingRepo) ListPendingStartedBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingRepo) MarkLapsed(ctx context.Context, ids []int) (int64, error) { return 0, nil }

func newTestPaymentService(bookingRepo repositories.BookingRepository) PaymentService {
	return NewPaymentService(nil, nil, bookingRepo, nil, nil, testSecret, slog.Default())
}

func callbackInput(orderID, paymentID string, amount int64) PaymentCallbackInput {
	return PaymentCallbackInput{
		Callback: payments.Callback{
			OrderID:   orderID,
			PaymentID: paymentID,
			Signature: sign(orderID, paymentID),
		},
		Amount: amount,
	}
}

// TestConfirmBookingPayment_BadSignature tests that a tampered signature is
// rejected before any state is touched.
func TestConfirmBookingPayment_BadSignature(t *testing.T) {
	svc := newTestPaymentService(&fakeBookingRepo{})

	input := callbackInput("order_1", "pay_1", 500)
	input.Signature = sign("order_1", "pay_other")

	_, err := svc.ConfirmBookingPayment(context.Background(), 1, input)
	assert.ErrorIs(t, err, ErrPaymentVerificationFailed)
}

// TestConfirmBookingPayment_MissingFields tests that empty identifiers and
// non-positive amounts fail validation.
func TestConfirmBookingPayment_MissingFields(t *testing.T) {
	svc := newTestPaymentService(&fakeBookingRepo{})

	_, err := svc.ConfirmBookingPayment(context.Background(), 1, PaymentCallbackInput{Amount: 100})
	assert.ErrorIs(t, err, ErrValidationFailed)

	input := callbackInput("order_1", "pay_1", 0)
	_, err = svc.ConfirmBookingPayment(context.Background(), 1, input)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

// TestConfirmBookingPayment_OrderMismatch tests that a valid signature over
// the wrong order cannot credit a booking.
func TestConfirmBookingPayment_OrderMismatch(t *testing.T) {
	pinned := "order_expected"
	repo := &fakeBookingRepo{booking: &models.Booking{
		ID:             7,
		TotalPrice:     1000,
		PaymentOrderID: &pinned,
		Status:         status.BookingPendingApproval,
	}}
	svc := newTestPaymentService(repo)

	_, err := svc.ConfirmBookingPayment(context.Background(), 7, callbackInput("order_other", "pay_1", 500))
	assert.ErrorIs(t, err, ErrPaymentVerificationFailed)
}

// TestConfirmBookingPayment_Overpay tests that crediting more than the
// remaining balance is refused.
func TestConfirmBookingPayment_Overpay(t *testing.T) {
	pinned := "order_1"
	repo := &fakeBookingRepo{booking: &models.Booking{
		ID:             7,
		TotalPrice:     1000,
		AmountPaid:     800,
		PaymentOrderID: &pinned,
		Status:         status.BookingPendingApproval,
	}}
	svc := newTestPaymentService(repo)

	_, err := svc.ConfirmBookingPayment(context.Background(), 7, callbackInput("order_1", "pay_1", 300))
	assert.ErrorIs(t, err, ErrPaymentOverpays)
}

// TestConfirmBookingPayment_UnknownBooking tests the not-found mapping.
func TestConfirmBookingPayment_UnknownBooking(t *testing.T) {
	svc := newTestPaymentService(&fakeBookingRepo{})

	_, err := svc.ConfirmBookingPayment(context.Background(), 42, callbackInput("order_1", "pay_1", 100))
	require.ErrorIs(t, err, ErrBookingNotFound)
}
