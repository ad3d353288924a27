package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// expiryMargin keeps a token from being handed out moments before the
// upstream stops accepting it.
const expiryMargin = 10 * time.Second

type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Err.Error()
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// TokenCache holds the process-wide bearer credential for the upstream
// provider and refreshes it on demand. A refresh is serialized so concurrent
// callers trigger at most one credential exchange.
type TokenCache struct {
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	now          func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenCache(tokenURL, clientID, clientSecret string, httpClient *http.Client) *TokenCache {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &TokenCache{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		now:          time.Now,
	}
}

// WithClock overrides the cache's clock. Tests use it to simulate expiry.
func (c *TokenCache) WithClock(now func() time.Time) *TokenCache {
	c.now = now
	return c
}

// Token returns the cached credential, exchanging client credentials for a
// fresh one when none is cached or the cached one is within the expiry
// margin. A failed exchange leaves the previous credential untouched.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt.Add(-expiryMargin)) {
		return c.token, nil
	}

	token, expiresIn, err := c.exchange(ctx)
	if err != nil {
		return "", &AuthenticationError{Err: err}
	}

	c.token = token
	c.expiresAt = c.now().Add(time.Duration(expiresIn) * time.Second)
	return c.token, nil
}

func (c *TokenCache) exchange(ctx context.Context) (string, int, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", 0, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", 0, fmt.Errorf("token response missing access_token")
	}

	return payload.AccessToken, payload.ExpiresIn, nil
}
