package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/courtside/internal/domain"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestCreateSessionForwardsRequest(t *testing.T) {
	var got sessionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/functions/v1/stripe-checkout", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sessionId":"cs_1","url":"https://pay.example/cs_1"}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL+"/", time.Second, quietLogger())
	require.NoError(t, err)

	sess, err := client.CreateSession(context.Background(), Request{
		PriceID:     "price_1",
		Mode:        "subscription",
		SuccessURL:  "https://app.example/success",
		CancelURL:   "https://app.example/pricing",
		AccessToken: "tok-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/cs_1", sess.URL)
	assert.Equal(t, sessionRequest{
		PriceID:    "price_1",
		SuccessURL: "https://app.example/success",
		CancelURL:  "https://app.example/pricing",
		Mode:       "subscription",
	}, got)
}

func TestCreateSessionErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "missing url",
			status: http.StatusOK,
			body:   `{"sessionId":"cs_1"}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoCheckoutURL)
			},
		},
		{
			name:   "upstream error message",
			status: http.StatusBadRequest,
			body:   `{"error":"No such price"}`,
			check: func(t *testing.T, err error) {
				var up *UpstreamError
				require.True(t, errors.As(err, &up))
				assert.Equal(t, http.StatusBadRequest, up.Status)
				assert.Equal(t, "No such price", up.Message)
			},
		},
		{
			name:   "upstream without body",
			status: http.StatusInternalServerError,
			body:   ``,
			check: func(t *testing.T, err error) {
				var up *UpstreamError
				require.True(t, errors.As(err, &up))
				assert.Empty(t, up.Message)
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `{"url":`,
			check: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrNoCheckoutURL)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client, err := NewHTTPClient(srv.URL, time.Second, quietLogger())
			require.NoError(t, err)

			_, err = client.CreateSession(context.Background(), Request{PriceID: "p", AccessToken: "t"})
			tc.check(t, err)
		})
	}
}

func TestNewHTTPClientRejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPClient("localhost:9099", time.Second, nil)
	require.Error(t, err)
}

func TestCatalog(t *testing.T) {
	cat := NewCatalog("price_a", "price_b")

	plans := cat.Plans()
	require.Len(t, plans, 2)
	assert.Equal(t, domain.TierOne, plans[0].ID)
	assert.Equal(t, domain.TierTwo, plans[1].ID)

	p, ok := cat.Lookup(domain.TierTwo)
	require.True(t, ok)
	assert.Equal(t, "price_b", p.PriceID)
	assert.Equal(t, "subscription", p.Mode)

	_, ok = cat.Lookup(domain.TierFree)
	assert.False(t, ok)
}

// TestHTTPClientSmoke opens a session against a live checkout endpoint.
func TestHTTPClientSmoke(t *testing.T) {
	baseURL := os.Getenv("CHECKOUT_URL")
	token := os.Getenv("CHECKOUT_TOKEN")
	priceID := os.Getenv("PRICE_ID_TIER1")
	if baseURL == "" || token == "" || priceID == "" {
		t.Skip("CHECKOUT_URL, CHECKOUT_TOKEN or PRICE_ID_TIER1 not provided")
	}
	client, err := NewHTTPClient(baseURL, 3*time.Second, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess, err := client.CreateSession(ctx, Request{
		PriceID:     priceID,
		Mode:        "subscription",
		SuccessURL:  "http://localhost/success",
		CancelURL:   "http://localhost/pricing",
		AccessToken: token,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.URL)
}
