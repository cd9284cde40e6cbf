package httpserver

import (
	"net/http"

	"github.com/Clark-Hu/courtside/internal/auth"
)

// requireIdentity resolves the bearer token once and stores the identity on
// the request context. Requests without a valid token are rejected.
func (s *Server) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.verifier == nil {
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
			return
		}
		id, err := s.verifier.FromHeader(r.Header.Get("Authorization"))
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}

// identity returns the caller resolved by requireIdentity.
func identity(r *http.Request) auth.Identity {
	id, _ := auth.FromContext(r.Context())
	return id
}
