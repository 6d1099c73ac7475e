// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/cinelist/internal/platform/apperr"
	"github.com/taibuivan/cinelist/internal/platform/constants"
	"github.com/taibuivan/cinelist/internal/platform/ctxutil"
	"github.com/taibuivan/cinelist/internal/platform/respond"
)

// Both gate failures render the same generic 401 so clients learn nothing
// about why verification failed. They stay distinct values for logging and tests.
var (
	// ErrTokenMissing is returned when no bearer token can be extracted.
	ErrTokenMissing = apperr.Unauthorized("Unauthorized")

	// ErrTokenInvalid is returned when the verifier rejects the token.
	ErrTokenInvalid = apperr.Unauthorized("Unauthorized")
)

// TokenVerifier validates a raw bearer token and returns its subject user id.
//
// [sec.TokenService] is the production implementation; tests inject fakes.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
//
// The scheme is matched case-insensitively. Anything other than exactly one
// non-empty token after the scheme yields [ErrTokenMissing].
func BearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", ErrTokenMissing
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrTokenMissing
	}

	return token, nil
}

// Authenticate resolves a raw Authorization header to a user id.
//
// # Flow
//  1. Extract the bearer token ([ErrTokenMissing] on failure).
//  2. Verify it via [TokenVerifier] ([ErrTokenInvalid] on any failure).
//  3. Return the subject id.
//
// It keeps no state: every call verifies from scratch.
func Authenticate(verifier TokenVerifier, header string) (string, error) {
	token, err := BearerToken(header)
	if err != nil {
		return "", err
	}

	userID, err := verifier.VerifyToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if userID == "" {
		return "", ErrTokenInvalid
	}

	return userID, nil
}

// RequireUser gates a route group on a verified bearer token.
//
// # Usage
//
// Attach to every protected route group; handlers behind it may rely on
// [requestutil.RequiredUserID] returning the resolved identity.
func RequireUser(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			userID, err := Authenticate(verifier, request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "auth_gate_rejected",
					slog.String("reason", err.Error()),
				)
				respond.Error(writer, request, err)
				return
			}

			// Scope the resolved identity to this request only.
			ctx := ctxutil.WithUserID(request.Context(), userID)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", userID)))

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
