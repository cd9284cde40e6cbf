package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Clark-Hu/courtside/internal/repository"
)

type ratingRequest struct {
	Overall  *int    `json:"overallRating"`
	Surface  *int    `json:"surfaceRating"`
	Net      *int    `json:"netRating"`
	Lighting *int    `json:"lightingRating"`
	Comment  *string `json:"comment"`
}

// validate checks the score bounds and returns the offending field.
func (req ratingRequest) validate() (string, error) {
	if req.Overall == nil {
		return "overallRating", errors.New("overallRating is required")
	}
	if !inScoreRange(*req.Overall) {
		return "overallRating", errors.New("overallRating must be between 1 and 5")
	}
	optional := []struct {
		field string
		value *int
	}{
		{"surfaceRating", req.Surface},
		{"netRating", req.Net},
		{"lightingRating", req.Lighting},
	}
	for _, o := range optional {
		if o.value != nil && !inScoreRange(*o.value) {
			return o.field, fmt.Errorf("%s must be between 1 and 5", o.field)
		}
	}
	return "", nil
}

func inScoreRange(v int) bool {
	return v >= 1 && v <= 5
}

func (s *Server) handleGetCourt(w http.ResponseWriter, r *http.Request) {
	courtID, ok := uuidParam(r, "courtID")
	if !ok {
		s.respondNotFound(w)
		return
	}

	start := time.Now()
	detail, err := s.views.CourtDetail(r.Context(), courtID, s.now())
	s.metrics.ObserveView("court_detail", start, err)
	if err != nil {
		s.respondFetchError(w, err, "court")
		return
	}
	s.respondJSON(w, http.StatusOK, toCourtDetailResponse(detail))
}

func (s *Server) handleCreateRating(w http.ResponseWriter, r *http.Request) {
	courtID, ok := uuidParam(r, "courtID")
	if !ok {
		s.respondNotFound(w)
		return
	}

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if field, err := req.validate(); err != nil {
		s.respondValidation(w, field, err.Error())
		return
	}

	caller := identity(r)
	if _, _, err := s.repo.Profiles.Ensure(r.Context(), caller.UserID, caller.Email); err != nil {
		s.logger.WithError(err).Error("ensure profile failed")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit rating")
		return
	}

	rating, err := s.repo.Ratings.Create(r.Context(), repository.RatingCreateParams{
		CourtID:  courtID,
		UserID:   caller.UserID,
		Overall:  *req.Overall,
		Surface:  req.Surface,
		Net:      req.Net,
		Lighting: req.Lighting,
		Comment:  normalizeStringPtr(req.Comment),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondNotFound(w)
			return
		}
		s.logger.WithError(err).WithField("court_id", courtID).Error("create rating failed")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit rating")
		return
	}

	s.respondJSON(w, http.StatusCreated, toRatingResponse(rating))
}

func normalizeStringPtr(ptr *string) *string {
	if ptr == nil {
		return nil
	}
	val := strings.TrimSpace(*ptr)
	if val == "" {
		return nil
	}
	return &val
}
