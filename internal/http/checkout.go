package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Clark-Hu/courtside/internal/checkout"
	"github.com/Clark-Hu/courtside/internal/domain"
)

type checkoutRequest struct {
	PlanID string `json:"planId"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans := s.plans.Plans()
	items := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		items = append(items, toPlanResponse(p))
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	plan, ok := s.plans.Lookup(domain.Tier(strings.TrimSpace(req.PlanID)))
	if !ok {
		s.respondValidation(w, "planId", "Unknown plan")
		return
	}
	if s.checkout == nil {
		s.respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Checkout is not available")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(s.cfg.CheckoutTimeoutSecs)*time.Second)
	defer cancel()

	caller := identity(r)
	session, err := s.checkout.CreateSession(ctx, checkout.Request{
		PriceID:     plan.PriceID,
		Mode:        plan.Mode,
		SuccessURL:  s.cfg.CheckoutSuccessURL,
		CancelURL:   s.cfg.CheckoutCancelURL,
		AccessToken: caller.Token,
	})
	if err != nil {
		entry := s.logger.WithError(err).WithField("plan", plan.ID)
		var upstream *checkout.UpstreamError
		switch {
		case errors.Is(err, checkout.ErrNoCheckoutURL):
			entry.Warn("checkout returned no url")
			s.respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "No checkout URL received")
		case errors.As(err, &upstream) && upstream.Message != "":
			entry.Warn("checkout rejected session")
			s.respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", upstream.Message)
		default:
			entry.Error("checkout session failed")
			s.respondError(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Failed to create checkout session")
		}
		return
	}
	s.respondJSON(w, http.StatusOK, checkoutResponse{URL: session.URL})
}
