package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
)

// APIError respuesta no-2xx del backend.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

// HTTPClient implementa API contra el backend JSON.
type HTTPClient struct {
	baseURL string
	token   string
	hc      *http.Client
}

var _ API = (*HTTPClient)(nil)

// NewHTTPClient baseURL sin la barra final (p. ej. http://localhost:8080).
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		hc:      &http.Client{Timeout: 15 * time.Second},
	}
}

// WithHTTPClient reemplaza el cliente (tests, transporte propio).
func (c *HTTPClient) WithHTTPClient(hc *http.Client) *HTTPClient {
	c.hc = hc
	return c
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: leer respuesta: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var er dto.ErrorResponse
		if json.Unmarshal(raw, &er) == nil {
			apiErr.Code = er.Code
			if er.Message != "" {
				apiErr.Message = er.Message
			}
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: respuesta no es JSON: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) GetCart(ctx context.Context) ([]dto.CartLineDTO, error) {
	var out dto.CartResponse
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &out); err != nil {
		return nil, err
	}
	return out.Cart, nil
}

func (c *HTTPClient) AddToCart(ctx context.Context, in dto.AddToCartRequest) error {
	return c.do(ctx, http.MethodPost, "/api/cart", in, nil)
}

func (c *HTTPClient) UpdateCart(ctx context.Context, in dto.UpdateCartRequest) error {
	return c.do(ctx, http.MethodPatch, "/api/cart", in, nil)
}

func (c *HTTPClient) RemoveFromCart(ctx context.Context, lineID string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart", dto.RemoveCartRequest{LineID: lineID}, nil)
}

func (c *HTTPClient) ValidateCoupon(ctx context.Context, in dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error) {
	var out dto.ValidateCouponResponse
	if err := c.do(ctx, http.MethodPost, "/api/coupons/validate", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) QuoteOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.CheckoutQuoteResponse, error) {
	var out dto.CheckoutQuoteResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders/quote", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	var out dto.CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders/create", in, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *HTTPClient) CreatePaymentOrder(ctx context.Context, in dto.CreatePaymentOrderRequest) (*dto.CreatePaymentOrderResponse, error) {
	var out dto.CreatePaymentOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/payment/create-order", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifyPayment(ctx context.Context, in dto.VerifyPaymentRequest) error {
	return c.do(ctx, http.MethodPost, "/api/payment/verify", in, nil)
}
