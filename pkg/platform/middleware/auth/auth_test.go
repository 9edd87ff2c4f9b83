package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	id "chocolate/pkg/domain"
	"chocolate/pkg/requestcontext"
)

type stubValidator map[string]id.AccountID

func (v stubValidator) ValidateToken(token string) (*JWTClaims, error) {
	account, ok := v[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &JWTClaims{Account: account, JTI: "jti-" + token}, nil
}

func TestRequireAuth(t *testing.T) {
	alice := id.AccountID{0xA1}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var seen id.AccountID
	handler := RequireAuth(stubValidator{"good": alice}, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = requestcontext.Caller(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid bearer token", "Bearer good", http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"rejected token", "Bearer bad", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = id.AccountID{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, alice, seen)
			} else {
				assert.True(t, seen.IsNil())
				assert.JSONEq(t, `{"error":"unauthorized","error_description":"`+errorDescription(tt.header)+`"}`, w.Body.String())
			}
		})
	}
}

func errorDescription(header string) string {
	if header == "Bearer bad" {
		return "invalid or expired token"
	}
	return "missing or invalid Authorization header"
}
