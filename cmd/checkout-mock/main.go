package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type sessionRequest struct {
	PriceID    string `json:"price_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
	Mode       string `json:"mode"`
}

func main() {
	var (
		port   = flag.String("port", "9099", "port to listen on")
		prices = flag.String("prices", "", "comma separated price ids to accept (empty accepts any)")
		logReq = flag.Bool("log", false, "enable request logging")
	)
	flag.Parse()

	logger := logrus.New()
	known := make(map[string]bool)
	for _, p := range strings.Split(*prices, ",") {
		if p = strings.TrimSpace(p); p != "" {
			known[p] = true
		}
	}

	r := chi.NewRouter()
	if *logReq {
		r.Use(middleware.Logger)
	}
	r.Post("/functions/v1/stripe-checkout", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			return
		}
		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
			return
		}
		if req.PriceID == "" || (len(known) > 0 && !known[req.PriceID]) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("No such price: %q", req.PriceID)})
			return
		}
		sessionID := "cs_test_" + uuid.NewString()
		logger.WithFields(logrus.Fields{"price_id": req.PriceID, "mode": req.Mode, "session": sessionID}).Info("session created")
		writeJSON(w, http.StatusOK, map[string]string{
			"sessionId": sessionID,
			"url":       req.SuccessURL + "?session_id=" + sessionID,
		})
	})

	addr := ":" + *port
	logger.WithField("addr", addr).Info("mock checkout listening")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
