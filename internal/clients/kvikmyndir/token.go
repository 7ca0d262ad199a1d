package kvikmyndir

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	tokenFlightKey  = "token"
	maxAuthBodySize = 1 << 20
)

// Authenticate performs exactly one POST to the authentication endpoint and,
// on success, replaces the cached token. It never retries.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	const op = "kvikmyndir.Client.Authenticate"
	log := c.log.With("op", op)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+authEndpoint, nil)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	req.Header.Set("Authorization", "Basic "+basicCredentials(c.creds))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("authentication request failed", "errMsg", err.Error())
		return "", &AuthError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAuthBodySize))
	if err != nil {
		return "", &AuthError{Err: fmt.Errorf("read response: %w", err)}
	}
	if !isSuccess(resp.StatusCode) {
		log.Warn("authentication rejected", "status", resp.StatusCode)
		return "", &AuthError{StatusCode: resp.StatusCode, Status: statusText(resp), Body: string(body)}
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &AuthError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if payload.Token == "" {
		return "", &AuthError{Err: errors.New("no token received from authentication")}
	}

	expiresAt := c.now().Add(c.ttl)
	c.mu.Lock()
	c.token = accessToken{value: payload.Token, expiresAt: expiresAt}
	c.mu.Unlock()
	log.Info("authenticated", "expires_at", expiresAt)
	return payload.Token, nil
}

// GetAccessToken returns the cached token while it is valid and authenticates
// otherwise. Concurrent callers that find the cache expired share a single
// authentication call; each caller still honors its own ctx.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	if token, ok := c.cachedToken(); ok {
		return token, nil
	}
	ch := c.flight.DoChan(tokenFlightKey, func() (any, error) {
		if token, ok := c.cachedToken(); ok {
			return token, nil
		}
		return c.Authenticate(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// ClearToken drops the cached token so the next GetAccessToken authenticates.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = accessToken{}
	c.mu.Unlock()
}

func (c *Client) cachedToken() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token.value == "" || !c.now().Before(c.token.expiresAt) {
		return "", false
	}
	return c.token.value, true
}

func basicCredentials(creds Credentials) string {
	return base64.StdEncoding.EncodeToString([]byte(creds.Username + ":" + creds.Password))
}
