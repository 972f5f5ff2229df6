package handlers

import (
	"context"
	"net/http"

	"github.com/devakhil7/plyr-sub003/middleware"
	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/repositories"
	"github.com/devakhil7/plyr-sub003/services"
	"github.com/devakhil7/plyr-sub003/status"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.CreateBookingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	booking, err := h.bookingService.Create(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"booking": booking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Quote prices a prospective booking without persisting anything.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var input services.CreateBookingInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	price, err := h.bookingService.Quote(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"total_price": price}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "bookingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	booking, err := h.bookingService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"booking": booking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ListBookingsFilter{
		UserID:  queryInt(r, "user_id"),
		VenueID: queryInt(r, "venue_id"),
	}
	if raw := queryString(r, "status"); raw != nil {
		s := status.BookingStatus(*raw)
		filter.Status = &s
	}
	if limit := queryInt(r, "limit"); limit != nil {
		filter.Limit = *limit
	}
	if offset := queryInt(r, "offset"); offset != nil {
		filter.Offset = *offset
	}

	bookings, err := h.bookingService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"bookings": bookings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.bookingService.Approve)
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.bookingService.Reject)
}

func (h *BookingHandler) decide(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, requesterID, bookingID int) (*models.Booking, error)) {
	requesterID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	bookingID, err := idParam(r, "bookingID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	booking, err := action(r.Context(), requesterID, bookingID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"booking": booking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
