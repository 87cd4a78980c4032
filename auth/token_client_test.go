package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-unified/core"
)

func TestHTTPTokenClientBodyAuth(t *testing.T) {
	var captured url.Values
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		captured = r.PostForm
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","refresh_token":"rt-2","expires_in":3600,"token_type":"bearer"}`))
	}))
	defer server.Close()

	client := NewHTTPTokenClient(WithUserAgent("go-unified-tests"))
	response, err := client.Refresh(context.Background(), core.TokenRefreshRequest{
		Profile: core.OAuthProfile{
			ProviderID: core.ProviderHubspot,
			TokenURL:   server.URL,
			AuthStyle:  core.AuthStyleBody,
		},
		ClientID:     "cid",
		ClientSecret: "secret",
		RefreshToken: "rt-1",
		RedirectURI:  "https://app.example.com/oauth/callback",
	})
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if captured.Get("grant_type") != "refresh_token" {
		t.Fatalf("unexpected grant_type: %q", captured.Get("grant_type"))
	}
	if captured.Get("refresh_token") != "rt-1" {
		t.Fatalf("unexpected refresh_token: %q", captured.Get("refresh_token"))
	}
	if captured.Get("client_id") != "cid" || captured.Get("client_secret") != "secret" {
		t.Fatalf("body auth should carry the client pair, got %v", captured)
	}
	if captured.Get("redirect_uri") != "https://app.example.com/oauth/callback" {
		t.Fatalf("unexpected redirect_uri: %q", captured.Get("redirect_uri"))
	}
	if authHeader != "" {
		t.Fatalf("body auth must not set an Authorization header, got %q", authHeader)
	}

	if response.AccessToken != "at-1" || response.RefreshToken != "rt-2" {
		t.Fatalf("unexpected tokens: %+v", response)
	}
	if response.ExpiresIn != time.Hour {
		t.Fatalf("unexpected expiry: %v", response.ExpiresIn)
	}
	if response.Raw["token_type"] != "bearer" {
		t.Fatalf("expected the raw payload to be retained, got %+v", response.Raw)
	}
}

func TestHTTPTokenClientBasicAuth(t *testing.T) {
	var captured url.Values
	var basicUser, basicPass string
	var basicOK bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		captured = r.PostForm
		basicUser, basicPass, basicOK = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1"}`))
	}))
	defer server.Close()

	client := NewHTTPTokenClient()
	_, err := client.Refresh(context.Background(), core.TokenRefreshRequest{
		Profile: core.OAuthProfile{
			ProviderID: core.ProviderPipedrive,
			TokenURL:   server.URL,
			AuthStyle:  core.AuthStyleBasic,
		},
		ClientID:     "cid",
		ClientSecret: "secret",
		RefreshToken: "rt-1",
	})
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if !basicOK || basicUser != "cid" || basicPass != "secret" {
		t.Fatalf("expected the client pair as Basic auth, got %q/%q ok=%v", basicUser, basicPass, basicOK)
	}
	if captured.Get("client_id") != "" || captured.Get("client_secret") != "" {
		t.Fatalf("basic auth must keep the client pair out of the body, got %v", captured)
	}
}

func TestHTTPTokenClientReadsLargeResponses(t *testing.T) {
	// Zoho and Atlassian access tokens are JWTs that run past 2KB on their
	// own; the whole payload must survive the read.
	accessToken := "at-" + strings.Repeat("a", 2048)
	refreshToken := "rt-" + strings.Repeat("b", 1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"` + accessToken + `","refresh_token":"` + refreshToken + `","expires_in":3600}`))
	}))
	defer server.Close()

	client := NewHTTPTokenClient()
	response, err := client.Refresh(context.Background(), core.TokenRefreshRequest{
		Profile: core.OAuthProfile{
			ProviderID: core.ProviderZohoCRM,
			TokenURL:   server.URL,
		},
		ClientID:     "cid",
		ClientSecret: "secret",
		RefreshToken: "rt-1",
	})
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if response.AccessToken != accessToken {
		t.Fatalf("access token was truncated: %d bytes", len(response.AccessToken))
	}
	if response.RefreshToken != refreshToken {
		t.Fatalf("refresh token was truncated: %d bytes", len(response.RefreshToken))
	}
}

func TestHTTPTokenClientErrorStatusIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	client := NewHTTPTokenClient()
	_, err := client.Refresh(context.Background(), core.TokenRefreshRequest{
		Profile: core.OAuthProfile{
			ProviderID: core.ProviderHubspot,
			TokenURL:   server.URL,
		},
		ClientID:     "cid",
		ClientSecret: "secret",
		RefreshToken: "rt-1",
	})
	if err == nil {
		t.Fatal("expected a non-2xx response to fail")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "invalid_grant") {
		t.Fatalf("error should carry the status and body snippet, got %v", err)
	}
}

func TestHTTPTokenClientRejectsEmptyAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":""}`))
	}))
	defer server.Close()

	client := NewHTTPTokenClient()
	_, err := client.Refresh(context.Background(), core.TokenRefreshRequest{
		Profile: core.OAuthProfile{
			ProviderID: core.ProviderHubspot,
			TokenURL:   server.URL,
		},
		ClientID:     "cid",
		ClientSecret: "secret",
		RefreshToken: "rt-1",
	})
	if err == nil {
		t.Fatal("expected an empty access token to be rejected")
	}
}

func TestHTTPTokenClientValidatesInput(t *testing.T) {
	client := NewHTTPTokenClient()
	profile := core.OAuthProfile{ProviderID: core.ProviderHubspot, TokenURL: "https://example.com/token"}

	if _, err := client.Refresh(context.Background(), core.TokenRefreshRequest{
		Profile: profile, ClientID: "cid", ClientSecret: "secret",
	}); err == nil {
		t.Fatal("expected a missing refresh token to be rejected")
	}
	if _, err := client.Refresh(context.Background(), core.TokenRefreshRequest{
		Profile: profile, RefreshToken: "rt-1",
	}); err == nil {
		t.Fatal("expected a missing client pair to be rejected")
	}
}

func TestResolveTokenURL(t *testing.T) {
	profile := core.OAuthProfile{
		ProviderID: core.ProviderZohoCRM,
		TokenURL:   "{account_url}/oauth/v2/token",
	}

	endpoint, err := ResolveTokenURL(profile, "https://accounts.zoho.eu/")
	if err != nil {
		t.Fatalf("ResolveTokenURL failed: %v", err)
	}
	if endpoint != "https://accounts.zoho.eu/oauth/v2/token" {
		t.Fatalf("unexpected endpoint: %q", endpoint)
	}

	if _, err := ResolveTokenURL(profile, "  "); err == nil {
		t.Fatal("expected a placeholder profile without an account url to fail")
	}

	fixed := core.OAuthProfile{ProviderID: core.ProviderHubspot, TokenURL: "https://api.hubapi.com/oauth/v1/token"}
	endpoint, err = ResolveTokenURL(fixed, "https://ignored.example.com")
	if err != nil {
		t.Fatalf("ResolveTokenURL failed: %v", err)
	}
	if endpoint != fixed.TokenURL {
		t.Fatalf("fixed endpoints must ignore the account url, got %q", endpoint)
	}

	if _, err := ResolveTokenURL(core.OAuthProfile{ProviderID: core.ProviderHubspot}, ""); err == nil {
		t.Fatal("expected a profile without a token url to fail")
	}
}
