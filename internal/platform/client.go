package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"tillpoint/internal/orders"
)

func init() {
	// The platform serializes money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Client is the terminal's boundary to the remote order platform.
type Client interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*orders.Order, error)
	ListOrders(ctx context.Context, q ListOrdersQuery) ([]*orders.Order, error)
	// VoidOrder authorizes with the manager's token, not the cashier
	// session token. The void is approved by a different principal than
	// the one whose session initiated it.
	VoidOrder(ctx context.Context, orderID, managerToken string, req VoidRequest) (*orders.Order, error)
	ListVoidLogs(ctx context.Context, q ListVoidLogsQuery) ([]orders.VoidLog, error)
	// SetSessionToken installs the cashier bearer token used on every
	// call except void submission.
	SetSessionToken(token string)
}

type httpClient struct {
	baseURL string
	client  *http.Client

	mu           sync.RWMutex
	sessionToken string
}

func NewClient(baseURL string, timeout time.Duration) (Client, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *httpClient) SetSessionToken(token string) {
	c.mu.Lock()
	c.sessionToken = token
	c.mu.Unlock()
}

func (c *httpClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionToken
}

func (c *httpClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}

	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, ErrNoToken
	}
	if res.User == nil {
		return nil, ErrNoUser
	}
	return &res, nil
}

func (c *httpClient) CreateOrder(ctx context.Context, req CreateOrderRequest) (*orders.Order, error) {
	var order orders.Order
	if err := c.do(ctx, http.MethodPost, "/orders", c.token(), req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *httpClient) ListOrders(ctx context.Context, q ListOrdersQuery) ([]*orders.Order, error) {
	vals := url.Values{}
	if q.CashierID != "" {
		vals.Set("cashierId", q.CashierID)
	}
	if q.Status != "" {
		vals.Set("status", string(q.Status))
	}

	raw, err := c.doRaw(ctx, http.MethodGet, withQuery("/orders", vals), c.token(), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[*orders.Order](raw)
}

func (c *httpClient) VoidOrder(ctx context.Context, orderID, managerToken string, req VoidRequest) (*orders.Order, error) {
	var order orders.Order
	path := fmt.Sprintf("/orders/%s/void", url.PathEscape(orderID))
	if err := c.do(ctx, http.MethodPost, path, managerToken, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *httpClient) ListVoidLogs(ctx context.Context, q ListVoidLogsQuery) ([]orders.VoidLog, error) {
	vals := url.Values{}
	if q.OrderID != "" {
		vals.Set("orderId", q.OrderID)
	}
	if q.CashierID != "" {
		vals.Set("cashierId", q.CashierID)
	}

	raw, err := c.doRaw(ctx, http.MethodGet, withQuery("/voids", vals), c.token(), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[orders.VoidLog](raw)
}

func (c *httpClient) do(ctx context.Context, method, path, token string, in, out any) error {
	raw, err := c.doRaw(ctx, method, path, token, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode platform response: %w", err)
	}
	return nil
}

func (c *httpClient) doRaw(ctx context.Context, method, path, token string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode platform request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errMessage(raw)}
	}
	return raw, nil
}

// decodeList accepts either a bare JSON array or a {data:[...]} envelope;
// the platform uses both depending on the endpoint version.
func decodeList[T any](raw []byte) ([]T, error) {
	var env struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		return env.Data, nil
	}

	var bare []T
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("decode platform list: %w", err)
	}
	return bare, nil
}

func errMessage(raw []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

func withQuery(path string, vals url.Values) string {
	if len(vals) == 0 {
		return path
	}
	return path + "?" + vals.Encode()
}
