// Package api is the HTTP client of the marketplace API. It implements
// checkout.Backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/utils"
)

// APIError is a non-2xx answer of the marketplace API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// envelope mirrors utils.StandardResponse as it arrives on the wire.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient returns a client for the API rooted at baseURL. A zero timeout
// means no timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of the client that sends token as bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

func (c *Client) FetchOrder(ctx context.Context, orderID string) (models.Order, error) {
	var dto orderDTO
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, &dto); err != nil {
		return models.Order{}, err
	}
	return dto.toModel(), nil
}

func (c *Client) FetchProduct(ctx context.Context, productID string) (models.Product, error) {
	var dto productDTO
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(productID), nil, &dto); err != nil {
		return models.Product{}, err
	}
	return dto.toModel(), nil
}

func (c *Client) FetchPaymentsForOrder(ctx context.Context, orderID string) ([]models.Payment, error) {
	var raw json.RawMessage
	path := "/payments?orderId=" + url.QueryEscape(orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	dtos, err := decodePayments(raw)
	if err != nil {
		return nil, fmt.Errorf("api: decoding payments of order %s: %v", orderID, err)
	}
	return paymentsToModels(dtos), nil
}

func (c *Client) CreatePayment(ctx context.Context, orderID string, method models.PaymentMethod) ([]models.Payment, error) {
	var raw json.RawMessage
	body := createPaymentRequest{OrderID: orderID, Method: string(method)}
	if err := c.do(ctx, http.MethodPost, "/payments", body, &raw); err != nil {
		return nil, err
	}
	dtos, err := decodePayments(raw)
	if err != nil {
		return nil, fmt.Errorf("api: decoding created payments of order %s: %v", orderID, err)
	}
	return paymentsToModels(dtos), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: building request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		utils.LogError("API %s %s failed: %v", method, path, err)
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	utils.LogDebug("API %s %s -> %d in %v", method, path, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 300 {
				return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
			}
			return fmt.Errorf("api: decoding response of %s %s: %v", method, path, err)
		}
	}
	if resp.StatusCode >= 300 || env.Status == "error" {
		message := env.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("api: decoding data of %s %s: %v", method, path, err)
	}
	return nil
}
