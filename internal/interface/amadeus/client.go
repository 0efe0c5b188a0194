package amadeus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vandra-service/pkg/logger"
	"vandra-service/pkg/metrics"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	tokenPath = "/v1/security/oauth2/token"

	// Tokens are refreshed this long before their declared expiry.
	tokenEarlyExpiry = 5 * time.Minute
)

// ErrMissingCredentials is returned before any network call when no API key
// or secret is configured.
var ErrMissingCredentials = errors.New("Amadeus API credentials not configured")

// Config holds the flight-offers provider settings
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string

	// Limiter gates RequestWithRateLimit. Nil means one request per second.
	Limiter    *rate.Limiter
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
}

// Client talks to the Amadeus self-service API. The token cache and rate
// gate belong to the instance and are safe for concurrent use.
type Client struct {
	baseURL    string
	hasCreds   bool
	httpClient *http.Client
	tokens     oauth2.TokenSource
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewClient creates a new Amadeus client
func NewClient(cfg Config, logger logger.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(time.Second), 1)
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		hasCreds:   cfg.APIKey != "" && cfg.APISecret != "",
		httpClient: httpClient,
		limiter:    limiter,
		metrics:    cfg.Metrics,
		logger:     logger,
	}

	fetcher := &tokenFetcher{
		client: c,
		credentials: &clientcredentials.Config{
			ClientID:     cfg.APIKey,
			ClientSecret: cfg.APISecret,
			TokenURL:     c.baseURL + tokenPath,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
	}
	c.tokens = oauth2.ReuseTokenSourceWithExpiry(nil, fetcher, tokenEarlyExpiry)

	return c
}

// tokenFetcher performs the client-credentials exchange. Caching is left to
// the reuse token source wrapped around it. oauth2.TokenSource takes no
// context, so the exchange is bounded only by the HTTP client timeout;
// Client.Token stops waiting on it when the caller's context ends.
type tokenFetcher struct {
	client      *Client
	credentials *clientcredentials.Config
}

func (f *tokenFetcher) Token() (*oauth2.Token, error) {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, f.client.httpClient)

	token, err := f.credentials.Token(ctx)
	if err != nil {
		f.client.metrics.ProviderRequest("token", "error")

		pe := &ProviderError{
			Code:   CodeAuthFailed,
			Detail: "Failed to authenticate with Amadeus",
		}
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			if re.Response != nil {
				pe.Status = re.Response.StatusCode
			}
			pe.Payload = re.Body
		}
		f.client.logger.Error("Amadeus authentication failed", "status", pe.Status, "error", err)
		return nil, pe
	}

	f.client.metrics.ProviderRequest("token", "ok")
	f.client.logger.Debug("Amadeus token refreshed", "expiry", token.Expiry)
	return token, nil
}

type tokenResult struct {
	token *oauth2.Token
	err   error
}

// Token returns a bearer token, reusing the cached one until shortly before
// it expires. If ctx ends during a refresh, Token returns ctx.Err() and the
// refresh finishes in the background, filling the cache for the next caller.
func (c *Client) Token(ctx context.Context) (string, error) {
	if !c.hasCreds {
		return "", ErrMissingCredentials
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan tokenResult, 1)
	go func() {
		token, err := c.tokens.Token()
		done <- tokenResult{token: token, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		return res.token.AccessToken, nil
	}
}

// Request performs an authenticated call and decodes the JSON response into
// out. Non-2xx responses come back as *ProviderError.
func (c *Client) Request(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) error {
	token, err := c.Token(ctx)
	if err != nil {
		return err
	}

	target := c.baseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ProviderRequest(endpoint, "error")
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.ProviderRequest(endpoint, strconv.Itoa(resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		pe := newProviderError(resp.StatusCode, respBody)
		c.logger.Warn("Amadeus request failed",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"code", pe.Code,
			"detail", pe.Detail)
		return pe
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// RequestWithRateLimit waits on the rate gate before calling Request.
func (c *Client) RequestWithRateLimit(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return c.Request(ctx, method, endpoint, query, body, out)
}
