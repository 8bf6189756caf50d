package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fitaafita/backend/config"
	"github.com/fitaafita/backend/dto"
)

// CheckoutClient talks to the external payment provider's checkout-session
// API. The wire format is the provider's business; this client only carries
// the fields the booking flow needs. Without a configured base URL it runs
// in stub mode and fabricates a session, so development does not require
// provider credentials.
type CheckoutClient struct {
	BaseURL   string
	SecretKey string
	Client    *http.Client
}

// NewCheckoutClient builds a client from the environment
func NewCheckoutClient() *CheckoutClient {
	return &CheckoutClient{
		BaseURL:   config.GetEnv("PAYMENT_API_URL", ""),
		SecretKey: config.GetEnv("PAYMENT_SECRET_KEY", ""),
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CheckoutParams describes the session to create
type CheckoutParams struct {
	AmountCents   int64
	Currency      string
	ProductName   string
	Description   string
	CustomerEmail string
	ClientRef     string
	SuccessURL    string
	CancelURL     string
}

// CreateSession asks the provider for a checkout session
func (cc *CheckoutClient) CreateSession(ctx context.Context, params CheckoutParams) (*dto.CheckoutSession, error) {
	if cc.BaseURL == "" {
		// Stub session, mirrors what the provider would hand back
		return &dto.CheckoutSession{
			ID:         fmt.Sprintf("PAY-%d", time.Now().UnixNano()),
			URL:        params.SuccessURL,
			SuccessURL: params.SuccessURL,
			CancelURL:  params.CancelURL,
		}, nil
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("customer_email", params.CustomerEmail)
	form.Set("client_reference_id", params.ClientRef)
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	form.Set("line_items[0][price_data][product_data][description]", params.Description)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.BaseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+cc.SecretKey)

	resp, err := cc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var session dto.CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}
