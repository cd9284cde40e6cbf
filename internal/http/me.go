package httpserver

import (
	"errors"
	"net/http"

	"github.com/Clark-Hu/courtside/internal/repository"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	caller := identity(r)
	profile, created, err := s.repo.Profiles.Ensure(r.Context(), caller.UserID, caller.Email)
	if err != nil {
		s.logger.WithError(err).Error("ensure profile failed")
		s.respondError(w, http.StatusServiceUnavailable, "FETCH_ERROR", "Failed to load profile. Please try again later.")
		return
	}
	if created {
		s.logger.WithField("user_id", caller.UserID).Info("profile created")
	}
	s.respondJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) handleListMyRatings(w http.ResponseWriter, r *http.Request) {
	caller := identity(r)
	ratings, err := s.repo.Ratings.ListByUser(r.Context(), caller.UserID)
	if err != nil {
		s.logger.WithError(err).Error("list user ratings failed")
		s.respondError(w, http.StatusServiceUnavailable, "FETCH_ERROR", "Failed to load ratings. Please try again later.")
		return
	}

	items := make([]userRatingResponse, 0, len(ratings))
	for _, ur := range ratings {
		items = append(items, userRatingResponse{
			ratingResponse: toRatingResponse(ur.Rating),
			CourtNumber:    ur.CourtNumber,
			VenueID:        ur.VenueID,
			VenueName:      ur.VenueName,
		})
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) handleDeleteMyRating(w http.ResponseWriter, r *http.Request) {
	ratingID, ok := uuidParam(r, "ratingID")
	if !ok {
		s.respondNotFound(w)
		return
	}

	caller := identity(r)
	err := s.repo.Ratings.Delete(r.Context(), ratingID, caller.UserID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, repository.ErrNotFound):
		s.respondNotFound(w)
	case errors.Is(err, repository.ErrForbidden):
		s.respondError(w, http.StatusForbidden, "FORBIDDEN", "Only the author can delete a rating")
	default:
		s.logger.WithError(err).Error("delete rating failed")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete rating")
	}
}
