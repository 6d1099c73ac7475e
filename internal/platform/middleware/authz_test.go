// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinelist/internal/platform/ctxutil"
	"github.com/taibuivan/cinelist/internal/platform/middleware"
)

// mockVerifier is a testify mock implementing [middleware.TokenVerifier].
type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyToken(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

/*
TestBearerToken covers header parsing edge cases.
*/
func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		token   string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase_scheme", "bearer abc", "abc", false},
		{"surrounding_space", "  Bearer abc  ", "abc", false},
		{"empty", "", "", true},
		{"scheme_only", "Bearer", "", true},
		{"scheme_and_space", "Bearer   ", "", true},
		{"basic_scheme", "Basic dXNlcjpwYXNz", "", true},
		{"too_many_parts", "Bearer abc def", "", true},
		{"raw_token", "abc.def.ghi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := middleware.BearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, middleware.ErrTokenMissing)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}

/*
TestAuthenticate maps verifier outcomes to the gate's error taxonomy.
*/
func TestAuthenticate(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("VerifyToken", "good").Return("u1", nil)
	verifier.On("VerifyToken", "expired").Return("", errors.New("token is expired"))

	userID, err := middleware.Authenticate(verifier, "Bearer good")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = middleware.Authenticate(verifier, "Bearer expired")
	assert.ErrorIs(t, err, middleware.ErrTokenInvalid)

	_, err = middleware.Authenticate(verifier, "")
	assert.ErrorIs(t, err, middleware.ErrTokenMissing)

	verifier.AssertNumberOfCalls(t, "VerifyToken", 2)
}

/*
TestRequireUser verifies the gate blocks with 401 and injects identity on success.
*/
func TestRequireUser(t *testing.T) {
	verifier := &mockVerifier{}
	verifier.On("VerifyToken", "good").Return("u1", nil)
	verifier.On("VerifyToken", "bad").Return("", errors.New("signature is invalid"))

	var reached int
	var seenUserID string
	handler := middleware.RequireUser(verifier)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		reached++
		seenUserID = ctxutil.GetUserID(request.Context())
		writer.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing_header", "", http.StatusUnauthorized},
		{"malformed_header", "Token good", http.StatusUnauthorized},
		{"invalid_token", "Bearer bad", http.StatusUnauthorized},
		{"valid_token", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized","code":"UNAUTHORIZED"}`, recorder.Body.String())
			}
		})
	}

	assert.Equal(t, 1, reached)
	assert.Equal(t, "u1", seenUserID)
}
