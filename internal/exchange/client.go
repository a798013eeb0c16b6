package exchange

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Client is the contract the console consumes from the matching engine.
// SubmitOrder is fire-and-forget from the console's perspective; the response
// is accepted but nothing beyond log output is shown on success. GetOrder
// returns (nil, nil) when the engine does not know the id; a negative lookup
// is not an error.
type Client interface {
	SubmitOrder(ctx context.Context, order *Order) (*SubmitResponse, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
}

// SubmitResponse is the engine's acknowledgement of a submission.
type SubmitResponse struct {
	OrderID string      `json:"order_id"`
	Status  OrderStatus `json:"status"`
}

// envelope is the engine's standard response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// HTTPClient talks to the engine's order API over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Entry
}

// NewHTTPClient builds a client for the engine at baseURL. A zero timeout
// falls back to 15 seconds.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Entry) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *HTTPClient) SubmitOrder(ctx context.Context, order *Order) (*SubmitResponse, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest || env.Code != 0 {
		return nil, fmt.Errorf("order rejected: status=%d code=%d message=%s", resp.StatusCode, env.Code, env.Message)
	}

	var submitResp SubmitResponse
	if err := json.Unmarshal(env.Data, &submitResp); err != nil {
		return nil, fmt.Errorf("submit response parse failed: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"ticker":   order.Ticker,
		"type":     order.Type,
		"side":     order.Side,
		"size":     order.Size,
		"order_id": submitResp.OrderID,
		"status":   submitResp.Status,
	}).Info("order submitted")

	return &submitResp, nil
}

func (c *HTTPClient) GetOrder(ctx context.Context, id string) (*Order, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	endpoint := c.baseURL + "/v1/orders/" + url.PathEscape(strings.TrimSpace(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.WithField("order_id", id).Info("order not found")
		return nil, nil
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest || env.Code != 0 {
		return nil, fmt.Errorf("order lookup rejected: status=%d code=%d message=%s", resp.StatusCode, env.Code, env.Message)
	}

	var order Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		return nil, fmt.Errorf("order parse failed: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"ticker":   order.Ticker,
		"status":   order.Status,
	}).Info("order fetched")

	return &order, nil
}

func decodeEnvelope(resp *http.Response) (*envelope, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("engine response parse failed: status=%d body=%s", resp.StatusCode, string(body))
	}
	return &env, nil
}
