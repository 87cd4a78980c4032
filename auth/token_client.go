package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-unified/core"
)

const (
	defaultTokenRequestTimeout = 30 * time.Second
	// Error snippets are clipped; success bodies are not, Zoho and Atlassian
	// JWT access tokens alone exceed a few KB.
	maxTokenErrorBodyBytes = 2048
	maxTokenBodyBytes      = 1 << 20
)

// HTTPTokenClient exchanges refresh tokens against provider token
// endpoints. Requests are form encoded; the client pair travels in the
// body or as a Basic header depending on the profile's auth style.
type HTTPTokenClient struct {
	httpClient *http.Client
	userAgent  string
}

type HTTPTokenClientOption func(*HTTPTokenClient)

func WithHTTPClient(client *http.Client) HTTPTokenClientOption {
	return func(c *HTTPTokenClient) {
		c.httpClient = client
	}
}

func WithUserAgent(userAgent string) HTTPTokenClientOption {
	return func(c *HTTPTokenClient) {
		c.userAgent = strings.TrimSpace(userAgent)
	}
}

func NewHTTPTokenClient(options ...HTTPTokenClientOption) *HTTPTokenClient {
	client := &HTTPTokenClient{
		httpClient: &http.Client{Timeout: defaultTokenRequestTimeout},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTokenRequestTimeout}
	}
	return client
}

func (c *HTTPTokenClient) Refresh(ctx context.Context, req core.TokenRefreshRequest) (core.TokenRefreshResponse, error) {
	if c == nil || c.httpClient == nil {
		return core.TokenRefreshResponse{}, fmt.Errorf("auth: token client is not configured")
	}
	refreshToken := strings.TrimSpace(req.RefreshToken)
	if refreshToken == "" {
		return core.TokenRefreshResponse{}, fmt.Errorf("auth: refresh token is required")
	}
	clientID := strings.TrimSpace(req.ClientID)
	clientSecret := strings.TrimSpace(req.ClientSecret)
	if clientID == "" || clientSecret == "" {
		return core.TokenRefreshResponse{}, fmt.Errorf("auth: client id and secret are required")
	}

	endpoint, err := ResolveTokenURL(req.Profile, req.AccountURL)
	if err != nil {
		return core.TokenRefreshResponse{}, err
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	if redirect := strings.TrimSpace(req.RedirectURI); redirect != "" {
		form.Set("redirect_uri", redirect)
	}
	if req.Profile.AuthStyle != core.AuthStyleBasic {
		form.Set("client_id", clientID)
		form.Set("client_secret", clientSecret)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return core.TokenRefreshResponse{}, fmt.Errorf("auth: token request build failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if req.Profile.AuthStyle == core.AuthStyleBasic {
		httpReq.SetBasicAuth(clientID, clientSecret)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return core.TokenRefreshResponse{}, fmt.Errorf("auth: token request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, httpResp.Body)
		_ = httpResp.Body.Close()
	}()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, maxTokenErrorBodyBytes))
		return core.TokenRefreshResponse{}, fmt.Errorf(
			"auth: token endpoint returned %d: %s",
			httpResp.StatusCode,
			strings.TrimSpace(string(snippet)),
		)
	}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxTokenBodyBytes))
	if err != nil {
		return core.TokenRefreshResponse{}, fmt.Errorf("auth: token response read failed: %w", err)
	}

	var payload struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return core.TokenRefreshResponse{}, fmt.Errorf("auth: token response decode failed: %w", err)
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return core.TokenRefreshResponse{}, fmt.Errorf("auth: token endpoint returned no access token")
	}

	raw := map[string]any{}
	_ = json.Unmarshal(body, &raw)

	return core.TokenRefreshResponse{
		AccessToken:  strings.TrimSpace(payload.AccessToken),
		RefreshToken: strings.TrimSpace(payload.RefreshToken),
		ExpiresIn:    time.Duration(payload.ExpiresIn) * time.Second,
		Raw:          raw,
	}, nil
}

// ResolveTokenURL substitutes the {account_url} placeholder from the
// connection's account URL. Profiles without the placeholder ignore the
// account URL.
func ResolveTokenURL(profile core.OAuthProfile, accountURL string) (string, error) {
	endpoint := strings.TrimSpace(profile.TokenURL)
	if endpoint == "" {
		return "", fmt.Errorf("auth: profile for provider %s has no token url", profile.ProviderID)
	}
	if strings.Contains(endpoint, "{account_url}") {
		accountURL = strings.TrimRight(strings.TrimSpace(accountURL), "/")
		if accountURL == "" {
			return "", fmt.Errorf("auth: provider %s requires the connection account url", profile.ProviderID)
		}
		endpoint = strings.ReplaceAll(endpoint, "{account_url}", accountURL)
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return "", fmt.Errorf("auth: invalid token url %q: %w", endpoint, err)
	}
	return endpoint, nil
}

var _ core.TokenClient = (*HTTPTokenClient)(nil)
