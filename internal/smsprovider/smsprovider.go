// Package smsprovider rents phone numbers from a third-party SMS provider.
// The provider API itself is glue, not design: this client covers exactly the
// rent and cancel calls the portal needs.
package smsprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Rental is the provider's view of a rented number.
type Rental struct {
	ExternalID  string     `json:"id"`
	PhoneNumber string     `json:"phone_number"`
	Cost        float64    `json:"cost"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Client calls the provider's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	provider   string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		provider: "sms-activate",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Provider names which provider this client is configured against.
func (c *Client) Provider() string {
	return c.provider
}

// RentNumber rents a number for the given country and service.
func (c *Client) RentNumber(ctx context.Context, country, service string) (*Rental, error) {
	form := url.Values{}
	form.Set("country", country)
	form.Set("service", service)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rentals", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build rent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sms provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("sms provider returned %s", resp.Status)
	}

	var rental Rental
	if err := json.NewDecoder(resp.Body).Decode(&rental); err != nil {
		return nil, fmt.Errorf("decode rental response: %w", err)
	}
	return &rental, nil
}

// CancelRental cancels a rental on the provider side.
func (c *Client) CancelRental(ctx context.Context, externalID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/rentals/"+externalID, nil)
	if err != nil {
		return fmt.Errorf("build cancel request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("sms provider returned %s", resp.Status)
	}
	return nil
}
