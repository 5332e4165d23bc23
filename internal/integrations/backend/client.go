// Package backend is a thin HTTP client for the hosted customer directory.
// The back office reads customer records from it but never writes them.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

var (
	ErrCustomerNotFound = errors.New("backend: customer not found")
	ErrUnavailable      = errors.New("backend: service unavailable")
)

// APIError carries the error message the backend returned in its body, so
// handlers can surface it to the operator verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend: request failed with status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchCustomers queries the directory by free text over name, email and
// phone. An empty query returns an empty slice without calling the backend.
func (c *Client) SearchCustomers(ctx context.Context, query string, limit int) ([]domain.Customer, error) {
	if query == "" {
		return []domain.Customer{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	endpoint := fmt.Sprintf("%s/api/customers?q=%s&limit=%d", c.baseURL, url.QueryEscape(query), limit)

	var out struct {
		Customers []domain.Customer `json:"customers"`
	}
	if err := c.get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	if out.Customers == nil {
		out.Customers = []domain.Customer{}
	}
	return out.Customers, nil
}

func (c *Client) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	endpoint := fmt.Sprintf("%s/api/customers/%s", c.baseURL, url.PathEscape(id))

	var customer domain.Customer
	if err := c.get(ctx, endpoint, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return ErrCustomerNotFound
	default:
		// The backend reports failures as {"error": "..."}; pass the
		// message through when present.
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return nil
}
