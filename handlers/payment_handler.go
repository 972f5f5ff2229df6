package handlers

import (
	"errors"
	"net/http"

	"github.com/devakhil7/plyr-sub003/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordBookingOrder stores the gateway order id created for a booking's
// advance payment so the later callback can be matched against it.
func (h *PaymentHandler) RecordBookingOrder(w http.ResponseWriter, r *http.Request) {
	bookingID, err := idParam(r, "bookingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		OrderID string `json:"order_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.paymentService.RecordBookingOrder(r.Context(), bookingID, input.OrderID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"order_id": input.OrderID}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ConfirmBookingPayment handles the signed gateway callback for a booking
// advance. A replayed callback succeeds without crediting twice.
func (h *PaymentHandler) ConfirmBookingPayment(w http.ResponseWriter, r *http.Request) {
	bookingID, err := idParam(r, "bookingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PaymentCallbackInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Signature == "" {
		badRequestResponse(w, r, errors.New("callback signature is required"))
		return
	}

	booking, err := h.paymentService.ConfirmBookingPayment(r.Context(), bookingID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"booking": booking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ConfirmTeamFeePayment handles the signed gateway callback for a tournament
// entry fee.
func (h *PaymentHandler) ConfirmTeamFeePayment(w http.ResponseWriter, r *http.Request) {
	teamID, err := idParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PaymentCallbackInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Signature == "" {
		badRequestResponse(w, r, errors.New("callback signature is required"))
		return
	}

	team, err := h.paymentService.ConfirmTeamFeePayment(r.Context(), teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PaymentHandler) ListByBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := idParam(r, "bookingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payments, err := h.paymentService.ListByBooking(r.Context(), bookingID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payments": payments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
