package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSendInvitationGates(t *testing.T) {
	a := testAPI()
	user := userModel{ID: 3, Username: "editor1", Role: "editor", IsActive: true}
	a.userLookup = func(context.Context, string) (userModel, error) { return user, nil }

	routes, err := a.Routes()
	if err != nil {
		t.Fatalf("Routes() error = %v", err)
	}

	editor, err := a.issueAccessToken(user, time.Now().UTC())
	if err != nil {
		t.Fatalf("issueAccessToken() error = %v", err)
	}

	// An empty guest list fails validation before any storage access,
	// which is enough to tell the role gates apart.
	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{
			name:       "events path open to any authenticated user",
			path:       "/api/events/1/send-invitations",
			token:      editor,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "events path still requires auth",
			path:       "/api/events/1/send-invitations",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "notifications path stays admin only",
			path:       "/api/notifications/1/send-invitations",
			token:      editor,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader("{}"))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			routes.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
