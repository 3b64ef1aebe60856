// Package checkout is a client for the hosted payment checkout provider.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is the provider-side record of an intended payment.
type Session struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

// SessionPaid is the provider's terminal status of a completed payment.
const SessionPaid = "paid"

// CreateSessionParams describes the cart for a new checkout session.
// IdempotencyKey dedupes repeated creates provider-side; callers that retry
// must set it once per logical create. Generated when empty.
type CreateSessionParams struct {
	AmountCents    int64
	Currency       string
	ProductName    string
	CustomerEmail  string
	ParcelID       string
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// HTTPGateway is a checkout gateway backed by the provider's REST API.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway creates a checkout gateway for the given API base URL and key.
func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateSession creates a checkout session and returns it with the redirect URL.
func (g *HTTPGateway) CreateSession(ctx context.Context, p CreateSessionParams) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", p.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(p.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", p.ProductName)
	form.Set("customer_email", p.CustomerEmail)
	form.Set("metadata[parcelId]", p.ParcelID)
	form.Set("metadata[parcelName]", p.ProductName)
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("checkout gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	key := p.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}
	// the provider dedupes retried creates by this key
	req.Header.Set("Idempotency-Key", key)

	return g.do(req, "CreateSession")
}

// GetSession fetches the authoritative final state of a session by id.
func (g *HTTPGateway) GetSession(ctx context.Context, id string) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.baseURL+"/v1/checkout/sessions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("checkout gateway: build request: %w", err)
	}
	return g.do(req, "GetSession")
}

func (g *HTTPGateway) do(req *http.Request, method string) (*Session, error) {
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout gateway: %s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("checkout gateway: %s: read body: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Method: method, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var s Session
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("checkout gateway: %s: decode: %w", method, err)
	}
	return &s, nil
}

// APIError is a non-200 response from the provider.
type APIError struct {
	Method string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("checkout gateway: %s: provider returned %d: %s", e.Method, e.Status, e.Body)
}
