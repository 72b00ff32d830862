package callback

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/herdsim/internal/config"
)

// Client pushes messages to the application shell embedding the herd view.
type Client interface {
	Deliver(ctx context.Context, msg Message) error
}

// Message is the envelope understood by the shell's message listener.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a callback client using the provided configuration values.
func NewClient(cfg config.CallbackConfig) *APIClient {
	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{
		httpClient: restyClient,
		url:        cfg.URL,
	}
}

// apiError represents an error payload returned by the shell.
type apiError struct {
	Error string `json:"error"`
}

// Deliver posts msg to the shell and fails on any non-2xx answer.
func (c *APIClient) Deliver(ctx context.Context, msg Message) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(msg).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("deliver %s message: %w", msg.Type, err)
	}

	if resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("shell callback error: code=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}

	return nil
}
