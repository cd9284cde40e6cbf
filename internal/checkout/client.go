package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNoCheckoutURL is returned when the hosted checkout answers without a redirect URL.
var ErrNoCheckoutURL = errors.New("checkout: no checkout url received")

// Request describes a checkout session to open on behalf of an identity.
type Request struct {
	PriceID     string
	Mode        string
	SuccessURL  string
	CancelURL   string
	AccessToken string
}

// Session is the redirect target issued by the payment collaborator.
type Session struct {
	URL string
}

// Client defines the contract for opening hosted checkout sessions.
type Client interface {
	CreateSession(ctx context.Context, req Request) (Session, error)
}

// UpstreamError carries a non-2xx answer from the checkout collaborator.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("checkout: upstream returned %d", e.Status)
	}
	return fmt.Sprintf("checkout: upstream returned %d: %s", e.Status, e.Message)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	endpoint *url.URL
	client   *http.Client
	logger   logrus.FieldLogger
}

// NewHTTPClient constructs a new HTTP-backed checkout client.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logrus.FieldLogger) (*HTTPClient, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse checkout url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("parse checkout url: %q is not absolute", baseURL)
	}
	return &HTTPClient{
		endpoint: parsed.JoinPath("functions", "v1", "stripe-checkout"),
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger.WithField("component", "checkout"),
	}, nil
}

type sessionRequest struct {
	PriceID    string `json:"price_id"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
	Mode       string `json:"mode"`
}

type sessionResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CreateSession asks the hosted checkout for a redirect URL.
func (c *HTTPClient) CreateSession(ctx context.Context, in Request) (Session, error) {
	body, err := json.Marshal(sessionRequest{
		PriceID:    in.PriceID,
		SuccessURL: in.SuccessURL,
		CancelURL:  in.CancelURL,
		Mode:       in.Mode,
	})
	if err != nil {
		return Session{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+in.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return Session{}, err
	}
	defer resp.Body.Close()

	payload, err := decodeSession(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WithFields(logrus.Fields{
			"status":   resp.StatusCode,
			"price_id": in.PriceID,
		}).Warn("unexpected checkout status")
		return Session{}, &UpstreamError{Status: resp.StatusCode, Message: payload.Error}
	}
	if err != nil {
		return Session{}, fmt.Errorf("decode checkout response: %w", err)
	}
	if payload.URL == "" {
		return Session{}, ErrNoCheckoutURL
	}
	return Session{URL: payload.URL}, nil
}

func decodeSession(r io.Reader) (sessionResponse, error) {
	var payload sessionResponse
	err := json.NewDecoder(io.LimitReader(r, 1<<20)).Decode(&payload)
	return payload, err
}
