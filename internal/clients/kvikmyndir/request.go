package kvikmyndir

import (
	"context"
	"io"
	"net/http"
)

type RequestOptions struct {
	Method string // GET when empty
	Header http.Header
	Body   io.Reader
}

// Request sends an authenticated request to baseURL+endpoint and returns the
// raw response; the caller owns resp.Body and interprets the status.
// Caller headers override Content-Type but never the access token header.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) (*http.Response, error) {
	token, err := c.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, opts.Body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range opts.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set(tokenHeader, token)
	return c.http.Do(req)
}
