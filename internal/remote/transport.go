// Package remote talks to the recipe and nutrition HTTP APIs.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/windoze95/saltybytes-planner/internal/metrics"
)

// Transport performs JSON requests bounded by a timeout race.
type Transport struct {
	api        string
	timeout    time.Duration
	httpClient *http.Client
}

// NewTransport creates a transport. api names the upstream in metrics.
func NewTransport(api string, timeout time.Duration) *Transport {
	return &Transport{
		api:        api,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

type response struct {
	status int
	body   []byte
	err    error
}

// Do sends the request and decodes the JSON body into out. A non-nil body is sent as a
// JSON POST. The request races a timer; when the timer wins the request keeps running
// in the background and its result is discarded. Cancelling ctx stops the wait but
// not the request.
func (t *Transport) Do(ctx context.Context, method, url string, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), method, url, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	done := make(chan response, 1)
	go func() {
		resp, err := t.httpClient.Do(req)
		if err != nil {
			done <- response{err: err}
			return
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		done <- response{status: resp.StatusCode, body: data, err: err}
	}()

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()

	var res response
	select {
	case res = <-done:
	case <-timer.C:
		metrics.RemoteRequests.WithLabelValues(t.api, metrics.OutcomeTimeout).Inc()
		return &NetworkError{Op: method + " " + t.api, Timeout: true, After: t.timeout}
	case <-ctx.Done():
		metrics.RemoteRequests.WithLabelValues(t.api, metrics.OutcomeError).Inc()
		return &NetworkError{Op: method + " " + t.api, Err: ctx.Err()}
	}
	metrics.RemoteLatency.WithLabelValues(t.api).Observe(time.Since(start).Seconds())

	if res.err != nil {
		metrics.RemoteRequests.WithLabelValues(t.api, metrics.OutcomeError).Inc()
		return &NetworkError{Op: method + " " + t.api, Err: res.err}
	}

	if res.status < 200 || res.status > 299 {
		metrics.RemoteRequests.WithLabelValues(t.api, metrics.OutcomeError).Inc()
		return &APIError{Message: serverMessage(res.body, res.status), Status: res.status}
	}

	metrics.RemoteRequests.WithLabelValues(t.api, metrics.OutcomeOK).Inc()
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", t.api, err)
	}
	return nil
}

// serverMessage pulls the message field out of an error body, falling back to the status text.
func serverMessage(body []byte, status int) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return http.StatusText(status)
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr) && netErr.Timeout
}
