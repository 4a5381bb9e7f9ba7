// Package parserclient calls a running résumé parse service.
package parserclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Result mirrors the POST /parse-resume response body.
type Result struct {
	Skills    []string `json:"skills"`
	Education []string `json:"education"`
	RawText   string   `json:"raw_text"`
}

// APIError is the error envelope returned by the service.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("parse-resume: %d %s: %s", e.Status, e.Code, e.Message)
}

type errorEnvelope struct {
	Error APIError `json:"error"`
}

// Client uploads résumés to the parse endpoint.
type Client struct {
	http *resty.Client
}

// New builds a Client for the service at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}, nil
}

// Parse uploads r as the "resume" form field and decodes the result.
// Non-2xx answers come back as *APIError.
func (c *Client) Parse(ctx context.Context, fileName string, r io.Reader) (Result, error) {
	var out Result
	var envelope errorEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("resume", fileName, r).
		SetResult(&out).
		SetError(&envelope).
		Post("/parse-resume")
	if err != nil {
		return Result{}, fmt.Errorf("parse-resume request: %w", err)
	}
	if resp.IsError() {
		apiErr := envelope.Error
		apiErr.Status = resp.StatusCode()
		if apiErr.Code == "" {
			apiErr.Code = "unknown"
			apiErr.Message = strings.TrimSpace(resp.String())
		}
		return Result{}, &apiErr
	}
	return out, nil
}
