package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testAPI() *API {
	return &API{config: Config{
		JWTSigningKey:   "test-signing-key",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	a := testAPI()
	user := userModel{ID: 7, Username: "editor1", Role: "editor"}

	token, err := a.issueAccessToken(user, time.Now().UTC())
	if err != nil {
		t.Fatalf("issueAccessToken() error = %v", err)
	}

	claims, err := a.parseAccessToken(token)
	if err != nil {
		t.Fatalf("parseAccessToken() error = %v", err)
	}
	if claims.Username != "editor1" {
		t.Fatalf("claims.Username = %q, want %q", claims.Username, "editor1")
	}
	if claims.Role != "editor" {
		t.Fatalf("claims.Role = %q, want %q", claims.Role, "editor")
	}
	if claims.Subject != "7" {
		t.Fatalf("claims.Subject = %q, want %q", claims.Subject, "7")
	}
}

func TestParseAccessTokenRejections(t *testing.T) {
	a := testAPI()
	user := userModel{ID: 1, Username: "admin", Role: "admin"}

	expired, err := a.issueAccessToken(user, time.Now().UTC().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("issueAccessToken() error = %v", err)
	}

	other := &API{config: Config{JWTSigningKey: "different-key", AccessTokenTTL: time.Minute}}
	foreign, err := other.issueAccessToken(user, time.Now().UTC())
	if err != nil {
		t.Fatalf("issueAccessToken() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "expired", token: expired},
		{name: "wrong key", token: foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.parseAccessToken(tt.token); err == nil {
				t.Fatal("parseAccessToken() error = nil, want error")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	protected := requireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		user       *userModel
		wantStatus int
	}{
		{
			name:       "no user in context",
			user:       nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong role",
			user:       &userModel{Username: "ed", Role: "editor"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin allowed",
			user:       &userModel{Username: "root", Role: "admin"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), userContextKey, *tt.user))
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
