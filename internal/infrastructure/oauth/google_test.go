package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func fakeGoogle(t *testing.T, tokenStatus int, tokenBody map[string]any, infoStatus int, infoBody map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token endpoint called with %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "authorization_code" {
			t.Errorf("grant_type = %q", got)
		}
		w.WriteHeader(tokenStatus)
		_ = json.NewEncoder(w).Encode(tokenBody)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-access-token" {
			t.Errorf("Authorization = %q", got)
		}
		w.WriteHeader(infoStatus)
		_ = json.NewEncoder(w).Encode(infoBody)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(srv *httptest.Server) *GoogleProvider {
	return NewGoogleProvider(GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/api/auth/google-callback",
		AuthURL:      srv.URL + "/auth",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
	})
}

func TestGoogleProvider_LoginURL(t *testing.T) {
	p := NewGoogleProvider(GoogleConfig{
		ClientID:    "client-id",
		RedirectURL: "http://localhost:8080/api/auth/google-callback",
	})

	raw := p.LoginURL("nonce123")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse login url: %v", err)
	}
	if !strings.HasPrefix(raw, "https://accounts.google.com/") {
		t.Fatalf("expected default Google auth endpoint, got %s", raw)
	}

	q := u.Query()
	for key, want := range map[string]string{
		"client_id":     "client-id",
		"redirect_uri":  "http://localhost:8080/api/auth/google-callback",
		"response_type": "code",
		"scope":         "openid email profile",
		"state":         "nonce123",
	} {
		if got := q.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestGoogleProvider_ExchangeSuccess(t *testing.T) {
	srv := fakeGoogle(t,
		http.StatusOK, map[string]any{"access_token": "test-access-token", "token_type": "Bearer"},
		http.StatusOK, map[string]any{
			"sub":     "google-sub-1",
			"email":   "alice@example.com",
			"name":    "Alice Doe",
			"picture": "https://img.example.com/alice.png",
		},
	)
	p := newTestProvider(srv)

	profile, err := p.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if profile.ProviderID != "google-sub-1" {
		t.Errorf("ProviderID = %q", profile.ProviderID)
	}
	if profile.Email != "alice@example.com" {
		t.Errorf("Email = %q", profile.Email)
	}
	if profile.Name != "Alice Doe" {
		t.Errorf("Name = %q", profile.Name)
	}
	if profile.PictureURL != "https://img.example.com/alice.png" {
		t.Errorf("PictureURL = %q", profile.PictureURL)
	}
}

func TestGoogleProvider_ExchangeTokenEndpointFailure(t *testing.T) {
	srv := fakeGoogle(t,
		http.StatusBadRequest, map[string]any{"error": "invalid_grant"},
		http.StatusOK, nil,
	)
	p := newTestProvider(srv)

	if _, err := p.Exchange(context.Background(), "stale-code"); err == nil {
		t.Fatalf("expected error for rejected code")
	}
}

func TestGoogleProvider_ExchangeEmptyAccessToken(t *testing.T) {
	srv := fakeGoogle(t,
		http.StatusOK, map[string]any{"token_type": "Bearer"},
		http.StatusOK, nil,
	)
	p := newTestProvider(srv)

	if _, err := p.Exchange(context.Background(), "auth-code"); err == nil {
		t.Fatalf("expected error for missing access token")
	}
}

func TestGoogleProvider_ExchangeIncompleteUserInfo(t *testing.T) {
	srv := fakeGoogle(t,
		http.StatusOK, map[string]any{"access_token": "test-access-token"},
		http.StatusOK, map[string]any{"email": "alice@example.com"},
	)
	p := newTestProvider(srv)

	if _, err := p.Exchange(context.Background(), "auth-code"); err == nil {
		t.Fatalf("expected error for user info without subject")
	}
}

func TestGoogleProvider_ExchangeUserInfoEndpointFailure(t *testing.T) {
	srv := fakeGoogle(t,
		http.StatusOK, map[string]any{"access_token": "test-access-token"},
		http.StatusInternalServerError, map[string]any{"error": "backend"},
	)
	p := newTestProvider(srv)

	if _, err := p.Exchange(context.Background(), "auth-code"); err == nil {
		t.Fatalf("expected error for failing userinfo endpoint")
	}
}
