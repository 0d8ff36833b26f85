// Package analysis talks to the external speech and video analysis services.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"confidencevoice/internal/retry"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var ErrUnknownService = errors.New("unknown analysis service")

// ServiceError is a reply the analysis service sent on purpose: a non 2xx status or
// a body with "success": false.
type ServiceError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service: %d %s", e.Service, e.StatusCode, e.Message)
}

type Client struct {
	http     *http.Client
	services map[string]string
	policy   retry.Policy
}

func NewClient(services map[string]string, policy retry.Policy, timeout time.Duration) *Client {
	return &Client{
		http:     &http.Client{Timeout: timeout},
		services: services,
		policy:   policy,
	}
}

// Reports fetches the caller's reports from service, forwarding the bearer token.
// Network failures and 5xx replies are retried, 4xx replies are not.
func (c *Client) Reports(ctx context.Context, service, token string) ([]byte, error) {
	base, ok := c.services[service]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, service)
	}
	url := strings.TrimRight(base, "/") + "/reports"

	var body []byte
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		body, err = c.get(ctx, service, url, token)
		if err != nil {
			logger.Warn().Err(err).Msgf("Calling %s", url)
		}
		return err
	})
	return body, err
}

func (c *Client) get(ctx context.Context, service, url, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Permanent(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &ServiceError{Service: service, StatusCode: resp.StatusCode, Message: replyMessage(body, resp.Status)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, retry.Permanent(&ServiceError{Service: service, StatusCode: resp.StatusCode, Message: replyMessage(body, resp.Status)})
	}

	if !gjson.ValidBytes(body) {
		return nil, retry.Permanent(&ServiceError{Service: service, StatusCode: http.StatusBadGateway, Message: "reply is not JSON"})
	}
	if success := gjson.GetBytes(body, "success"); success.Exists() && !success.Bool() {
		return nil, retry.Permanent(&ServiceError{Service: service, StatusCode: http.StatusBadGateway, Message: replyMessage(body, "request failed")})
	}
	return body, nil
}

func replyMessage(body []byte, fallback string) string {
	for _, path := range []string{"message", "error"} {
		if msg := gjson.GetBytes(body, path); msg.Type == gjson.String && msg.Str != "" {
			return msg.Str
		}
	}
	return fallback
}
