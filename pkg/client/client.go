package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/naveenspark/foodcourt/pkg/domain"
)

// DefaultTimeout bounds every request unless overridden with WithTimeout.
const DefaultTimeout = 30 * time.Second

// CredentialStore is the part of the token store the transport needs.
type CredentialStore interface {
	Get() (string, bool)
	Remove() error
}

// Client is the foodcourt API client. One instance is shared by every screen.
type Client struct {
	baseURL          string
	store            CredentialStore
	httpClient       *http.Client
	logger           *zap.Logger
	onSessionInvalid func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSessionInvalidHandler registers fn to run after a 401 has cleared the
// stored credential and before the failing call returns.
func WithSessionInvalidHandler(fn func()) Option {
	return func(c *Client) { c.onSessionInvalid = fn }
}

// New creates a new API client. store may be nil for anonymous use.
func New(baseURL string, store CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		store:   store,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// --- Auth ---

// Authenticate exchanges credentials for a new credential string.
// A 401 here means bad credentials and does not touch the stored session.
func (c *Client) Authenticate(ctx context.Context, creds domain.Credentials) (string, error) {
	var resp domain.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &resp, false); err != nil {
		return "", fmt.Errorf("client.Authenticate: %w", err)
	}
	if resp.JWT == "" {
		return "", fmt.Errorf("client.Authenticate: empty credential in response")
	}
	return resp.JWT, nil
}

// --- Restaurants ---

// ListRestaurants returns every restaurant visible to the caller.
func (c *Client) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var restaurants []domain.Restaurant
	if err := c.get(ctx, "/api/restaurants", &restaurants); err != nil {
		return nil, fmt.Errorf("client.ListRestaurants: %w", err)
	}
	return restaurants, nil
}

// GetRestaurant fetches a single restaurant by ID.
func (c *Client) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	var r domain.Restaurant
	if err := c.get(ctx, "/api/restaurants/"+idPath(id), &r); err != nil {
		return nil, fmt.Errorf("client.GetRestaurant: %w", err)
	}
	return &r, nil
}

// CreateRestaurant creates a new restaurant. Admin only on the backend.
func (c *Client) CreateRestaurant(ctx context.Context, req CreateRestaurantRequest) (*domain.Restaurant, error) {
	var created domain.Restaurant
	if err := c.post(ctx, "/api/restaurants", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateRestaurant: %w", err)
	}
	return &created, nil
}

// DeleteRestaurant deletes a restaurant by ID.
func (c *Client) DeleteRestaurant(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/restaurants/"+idPath(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteRestaurant: %w", err)
	}
	return nil
}

// --- Menu items ---

// ListMenuItems returns the menu of a restaurant.
func (c *Client) ListMenuItems(ctx context.Context, restaurantID int64) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := c.get(ctx, "/api/menu-items/restaurant/"+idPath(restaurantID), &items); err != nil {
		return nil, fmt.Errorf("client.ListMenuItems: %w", err)
	}
	return items, nil
}

// CreateMenuItem adds a menu item to a restaurant.
func (c *Client) CreateMenuItem(ctx context.Context, restaurantID int64, req CreateMenuItemRequest) (*domain.MenuItem, error) {
	var created domain.MenuItem
	if err := c.post(ctx, "/api/menu-items/restaurant/"+idPath(restaurantID), req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateMenuItem: %w", err)
	}
	return &created, nil
}

// --- Orders ---

// CreateOrder places an order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	var created domain.Order
	if err := c.post(ctx, "/api/orders", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateOrder: %w", err)
	}
	return &created, nil
}

// ListMyOrders returns the caller's own orders.
func (c *Client) ListMyOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/api/orders", &orders); err != nil {
		return nil, fmt.Errorf("client.ListMyOrders: %w", err)
	}
	return orders, nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	if err := c.post(ctx, "/api/orders/"+idPath(orderID)+"/cancel", nil, &order); err != nil {
		return nil, fmt.Errorf("client.CancelOrder: %w", err)
	}
	return &order, nil
}

// UpdatePaymentMethod changes the payment method of an order. Admin only on the backend.
func (c *Client) UpdatePaymentMethod(ctx context.Context, orderID int64, method string) (*domain.Order, error) {
	params := url.Values{}
	params.Set("paymentMethod", method)

	var order domain.Order
	path := "/api/orders/" + idPath(orderID) + "/payment-method?" + params.Encode()
	if err := c.doRequest(ctx, http.MethodPatch, path, nil, &order); err != nil {
		return nil, fmt.Errorf("client.UpdatePaymentMethod: %w", err)
	}
	return &order, nil
}

func idPath(id int64) string {
	return url.PathEscape(strconv.FormatInt(id, 10))
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	return c.do(ctx, method, path, body, out, true)
}

// do performs one request. enforceSession selects whether a 401 clears the
// stored credential and fires the session-invalid handler.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, enforceSession bool) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.store != nil {
		if token, ok := c.store.Get(); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	log.Debug("request done", zap.Int("status", resp.StatusCode), zap.Duration("took", time.Since(start)))

	if resp.StatusCode >= 400 {
		httpErr := readHTTPError(resp)
		if resp.StatusCode == http.StatusUnauthorized && enforceSession {
			c.invalidateSession(log)
			httpErr.sessionInvalid = true
		}
		return httpErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// invalidateSession clears the stored credential, then notifies the listener.
// Both happen before the failing call returns to its caller.
func (c *Client) invalidateSession(log *zap.Logger) {
	if c.store != nil {
		if err := c.store.Remove(); err != nil {
			log.Error("clear credential after 401", zap.Error(err))
		}
	}
	log.Info("session invalidated by backend")
	if c.onSessionInvalid != nil {
		c.onSessionInvalid()
	}
}

// readHTTPError builds an HTTPError from a failed response.
// The backend sends {"error": "...", "message": "..."}; message wins.
func readHTTPError(resp *http.Response) *HTTPError {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil {
		if apiErr.Message != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		if apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
	}
	if len(respBody) == 0 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: statusText(resp.StatusCode)}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
}
