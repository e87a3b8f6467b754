package orderapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/CharvitZalavadiya/GormishRestaurant/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.gormish.in"

var (
	ErrMissingRestaurantID = errors.New("restaurant id is required")
	ErrMissingOrderID      = errors.New("order id is required")
	ErrUnauthorized        = errors.New("orders api unauthorized")
	ErrRateLimited         = errors.New("orders api rate limited")
)

type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("orders api error: %s", e.Status)
	}
	return fmt.Sprintf("orders api error: %s: %s", e.Status, e.Body)
}

type Client struct {
	http         *resty.Client
	restaurantID string
	logger       *zap.Logger
}

func NewClient(cfg config.Config, logger *zap.Logger) *Client {
	baseURL := strings.TrimSpace(cfg.APIBaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(1).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode() == http.StatusTooManyRequests
		})

	if cfg.APIToken != "" {
		httpClient.SetAuthScheme("Bearer")
		httpClient.SetAuthToken(cfg.APIToken)
	}

	return &Client{
		http:         httpClient,
		restaurantID: strings.TrimSpace(cfg.RestaurantID),
		logger:       logger.Named("orderapi"),
	}
}

// ListOrders fetches the active orders for the configured restaurant. The
// backend wraps the list in a double data envelope.
func (c *Client) ListOrders(ctx context.Context) ([]RawOrder, error) {
	if c.restaurantID == "" {
		return nil, ErrMissingRestaurantID
	}

	var envelope ordersEnvelope
	path := fmt.Sprintf("/orders/restaurant/%s", c.restaurantID)
	if err := c.doGet(ctx, path, &envelope); err != nil {
		return nil, err
	}

	c.logger.Debug("orders fetched", zap.Int("count", len(envelope.Data.Data)))
	return envelope.Data.Data, nil
}

// UpdateStatus asks the backend to move one order to a new status. Only
// success or failure is consumed from the response.
func (c *Client) UpdateStatus(ctx context.Context, orderID, status string) error {
	if strings.TrimSpace(orderID) == "" {
		return ErrMissingOrderID
	}

	path := fmt.Sprintf("/orders/%s/status", orderID)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(statusUpdate{Status: status}).
		Patch(path)
	if err != nil {
		return fmt.Errorf("orders request: %w", err)
	}
	if resp.IsError() {
		return apiErrorFromResponse(resp)
	}

	c.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", status),
	)
	return nil
}

func (c *Client) doGet(ctx context.Context, path string, result any) error {
	resp, err := c.http.R().SetContext(ctx).SetResult(result).Get(path)
	if err != nil {
		return fmt.Errorf("orders request: %w", err)
	}
	if resp.IsError() {
		return apiErrorFromResponse(resp)
	}
	return nil
}

func apiErrorFromResponse(resp *resty.Response) error {
	body := strings.TrimSpace(resp.String())
	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       body,
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Error())
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Error())
	default:
		return apiErr
	}
}
