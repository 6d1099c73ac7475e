// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinelist/internal/platform/apperr"
	"github.com/taibuivan/cinelist/internal/platform/ctxutil"
	"github.com/taibuivan/cinelist/internal/platform/respond"
)

// loggedRequest returns a request whose context logger writes JSON lines to buffer.
func loggedRequest(buffer *bytes.Buffer) *http.Request {
	logger := slog.New(slog.NewJSONHandler(buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	request := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	return request.WithContext(ctxutil.WithLogger(request.Context(), logger))
}

func errorLines(buffer *bytes.Buffer) int {
	return strings.Count(buffer.String(), `"level":"ERROR"`)
}

/*
TestError_MapsAppErrors renders the envelope with the AppError status.
*/
func TestError_MapsAppErrors(t *testing.T) {
	var buffer bytes.Buffer
	recorder := httptest.NewRecorder()

	respond.Error(recorder, loggedRequest(&buffer), fmt.Errorf("favorites_service_add_failed: %w", apperr.NotFound("User")))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"User not found","code":"NOT_FOUND"}`, recorder.Body.String())
	assert.Zero(t, errorLines(&buffer))
}

/*
TestError_UnknownErrorLoggedOnce hides the cause and logs it a single time.
*/
func TestError_UnknownErrorLoggedOnce(t *testing.T) {
	var buffer bytes.Buffer
	recorder := httptest.NewRecorder()

	respond.Error(recorder, loggedRequest(&buffer), errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "connection refused")
	assert.Equal(t, 1, errorLines(&buffer))
	assert.Contains(t, buffer.String(), "connection refused")
}

/*
TestError_CancelledRequest answers 499 without an error-level log line.
*/
func TestError_CancelledRequest(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"bare", context.Canceled},
		{"wrapped", fmt.Errorf("favorites_service_enrich_cancelled: %w", context.Canceled)},
		{"inside_app_error", apperr.BadGateway("Movie catalog request failed", context.Canceled)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buffer bytes.Buffer
			recorder := httptest.NewRecorder()

			respond.Error(recorder, loggedRequest(&buffer), tt.err)

			assert.Equal(t, apperr.StatusClientClosedRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "CLIENT_CLOSED_REQUEST")
			assert.Zero(t, errorLines(&buffer))
			assert.Contains(t, buffer.String(), "api_request_cancelled")
		})
	}
}
