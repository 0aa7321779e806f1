package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/domain/models"
)

// Client delivers low-stock alerts to an HTTP endpoint.
type Client interface {
	SendLowStockAlert(ctx context.Context, alert models.LowStockAlert) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.AlertsConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

// apiError is the optional error body returned by the receiver.
type apiError struct {
	Error string `json:"error"`
}

// SendLowStockAlert posts the alert as JSON. Any 4xx/5xx response is an error.
func (c *APIClient) SendLowStockAlert(ctx context.Context, alert models.LowStockAlert) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("webhook error: code=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}

	return nil
}
