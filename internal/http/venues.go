package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Clark-Hu/courtside/internal/domain"
	"github.com/Clark-Hu/courtside/internal/repository"
	"github.com/Clark-Hu/courtside/internal/venueform"
)

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cards, err := s.views.VenueCards(r.Context())
	s.metrics.ObserveView("venue_cards", start, err)
	if err != nil {
		s.respondFetchError(w, err, "venues")
		return
	}
	s.respondJSON(w, http.StatusOK, toVenueListResponse(cards))
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := uuidParam(r, "venueID")
	if !ok {
		s.respondNotFound(w)
		return
	}

	start := time.Now()
	detail, err := s.views.VenueDetail(r.Context(), venueID)
	s.metrics.ObserveView("venue_detail", start, err)
	if err != nil {
		s.respondFetchError(w, err, "venue")
		return
	}
	s.respondJSON(w, http.StatusOK, toVenueDetailResponse(detail))
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.decodeVenueForm(w, r)
	if !ok {
		return
	}

	caller := identity(r)
	venue, err := s.repo.Venues.Create(r.Context(), caller.UserID, draft)
	if err != nil {
		s.respondSaveError(w, err, "create")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/venues/%s", venue.ID))
	s.respondJSON(w, http.StatusCreated, toVenueResponse(venue))
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := uuidParam(r, "venueID")
	if !ok {
		s.respondNotFound(w)
		return
	}
	draft, ok := s.decodeVenueForm(w, r)
	if !ok {
		return
	}

	caller := identity(r)
	venue, err := s.repo.Venues.Update(r.Context(), venueID, caller.UserID, draft)
	if err != nil {
		s.respondSaveError(w, err, "update")
		return
	}
	s.respondJSON(w, http.StatusOK, toVenueResponse(venue))
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := uuidParam(r, "venueID")
	if !ok {
		s.respondNotFound(w)
		return
	}

	caller := identity(r)
	if err := s.repo.Venues.Delete(r.Context(), venueID, caller.UserID); err != nil {
		s.respondSaveError(w, err, "delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMyVenues(w http.ResponseWriter, r *http.Request) {
	filters, err := buildVenueFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	caller := identity(r)
	filters.OwnerID = &caller.UserID

	result, err := s.repo.Venues.List(r.Context(), filters)
	if err != nil {
		s.logger.WithError(err).Error("list owned venues failed")
		s.respondError(w, http.StatusServiceUnavailable, "FETCH_ERROR", "Failed to load venues. Please try again later.")
		return
	}

	items := make([]venueResponse, 0, len(result.Items))
	for _, v := range result.Items {
		items = append(items, toVenueResponse(v))
	}
	s.respondJSON(w, http.StatusOK, ownedVenueListResponse{Items: items, NextCursor: result.NextCursor})
}

// decodeVenueForm reads and validates a venue form, answering the request
// itself when the form is rejected.
func (s *Server) decodeVenueForm(w http.ResponseWriter, r *http.Request) (domain.VenueDraft, bool) {
	var form venueform.Form
	if err := decodeJSONBody(w, r, &form); err != nil {
		s.respondDecodeError(w, err)
		return domain.VenueDraft{}, false
	}
	draft, err := form.Validate()
	if err != nil {
		var verr *venueform.ValidationError
		if errors.As(err, &verr) {
			s.respondFormError(w, verr)
			return domain.VenueDraft{}, false
		}
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return domain.VenueDraft{}, false
	}
	return draft, true
}

func (s *Server) respondSaveError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.respondNotFound(w)
	case errors.Is(err, repository.ErrForbidden):
		s.respondError(w, http.StatusForbidden, "FORBIDDEN", "Only the venue owner can change it")
	case errors.Is(err, repository.ErrDuplicateCourt):
		s.respondValidation(w, "courtNumber", venueform.ReasonDuplicateNumber)
	default:
		s.logger.WithError(err).WithField("action", action).Error("save venue failed")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", fmt.Sprintf("Failed to %s venue", action))
	}
}

func buildVenueFilters(query url.Values) (repository.VenueListFilters, error) {
	var filters repository.VenueListFilters

	if q := strings.TrimSpace(query.Get("q")); q != "" {
		filters.Query = &q
	}
	if val := strings.TrimSpace(query.Get("city")); val != "" {
		filters.City = &val
	}
	if val := strings.TrimSpace(query.Get("limit")); val != "" {
		limit, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("invalid limit value")
		}
		filters.Limit = limit
	}
	if val := strings.TrimSpace(query.Get("cursor")); val != "" {
		cursor, err := repository.DecodeCursor(val)
		if err != nil {
			return filters, fmt.Errorf("invalid cursor")
		}
		filters.Cursor = cursor
	}
	return filters, nil
}
