// Package httpclient wraps request/response exchanges with the restaurant
// data service. A transport failure, a non-2xx status or a 2xx body GetJSON
// cannot decode comes back as a *RequestError. The client never retries and
// sets no timeout of its own.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RequestError reports a failed exchange. StatusCode is zero when the request
// never produced a response, and 2xx when the body was unusable.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode == 0:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	case e.StatusCode >= 200 && e.StatusCode <= 299:
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.URL, e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client rooted at baseURL. A nil hc uses a zero http.Client.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Body is an encoded request payload and its content type.
type Body struct {
	ContentType string
	Data        io.Reader
}

// Do issues one request and returns the response body on a 2xx status.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body *Body) ([]byte, error) {
	_, data, err := c.do(ctx, method, path, query, body)
	return data, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body *Body) (*exchange, []byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		rd = body.Data
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return nil, nil, &RequestError{Method: method, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", body.ContentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &RequestError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &RequestError{Method: method, URL: target, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, &RequestError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	return &exchange{method: method, url: target, status: resp.StatusCode}, data, nil
}

// exchange identifies a completed request.
type exchange struct {
	method string
	url    string
	status int
}

// GetJSON fetches path and decodes the JSON body into a T.
func GetJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	ex, data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &RequestError{
			Method:     ex.method,
			URL:        ex.url,
			StatusCode: ex.status,
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}
	return out, nil
}

// PostForm sends values as an application/x-www-form-urlencoded body.
func (c *Client) PostForm(ctx context.Context, path string, values url.Values) error {
	_, err := c.Do(ctx, http.MethodPost, path, nil, &Body{
		ContentType: "application/x-www-form-urlencoded",
		Data:        strings.NewReader(values.Encode()),
	})
	return err
}
