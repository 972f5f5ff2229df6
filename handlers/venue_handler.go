package handlers

import (
	"net/http"

	"github.com/devakhil7/plyr-sub003/middleware"
	"github.com/devakhil7/plyr-sub003/models"
	"github.com/devakhil7/plyr-sub003/repositories"
	"github.com/devakhil7/plyr-sub003/services"
)

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(venueService services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.CreateVenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.Create(r.Context(), ownerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) Update(w http.ResponseWriter, r *http.Request) {
	requesterID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	venueID, err := idParam(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateVenueInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.Update(r.Context(), requesterID, venueID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ListVenuesFilter{
		OwnerID:  queryInt(r, "owner_id"),
		Sport:    queryString(r, "sport"),
		Location: queryString(r, "location"),
	}
	if limit := queryInt(r, "limit"); limit != nil {
		filter.Limit = *limit
	}
	if offset := queryInt(r, "offset"); offset != nil {
		filter.Offset = *offset
	}

	venues, err := h.venueService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"venues": venues}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ReplaceRules swaps the venue's full pricing rule list. Order in the request
// body is preserved and decides rule precedence.
func (h *VenueHandler) ReplaceRules(w http.ResponseWriter, r *http.Request) {
	requesterID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	venueID, err := idParam(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Rules []models.VenuePricingRule `json:"rules"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rules, err := h.venueService.ReplaceRules(r.Context(), requesterID, venueID, input.Rules)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rules": rules}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) PriceRange(w http.ResponseWriter, r *http.Request) {
	venueID, err := idParam(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	display, err := h.venueService.PriceRange(r.Context(), venueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"price_range": display}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VenueHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	requesterID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	venueID, err := idParam(r, "venueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.UploadPhoto(r.Context(), requesterID, venueID, r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"venue": venue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
