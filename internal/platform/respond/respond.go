// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Domain payloads keep the shapes the web client already consumes
// (e.g. {"favorites": [...]}), while every error follows one JSON envelope.
package respond

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/taibuivan/cinelist/internal/platform/apperr"
	"github.com/taibuivan/cinelist/internal/platform/ctxutil"
)

// SuccessEnvelope is the JSON envelope for infrastructure responses (health, readiness).
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Text writes a plain-text response with the given status code.
func Text(writer http.ResponseWriter, statusCode int, body string) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.WriteHeader(statusCode)
	_, _ = writer.Write([]byte(body))
}

// Error converts any Go error into a standardized JSON API error response.
//
// A cancelled request context is not a server fault: it is logged at debug
// and answered with 499. Every other 5xx is logged once, with its cause.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())
	requestID := ctxutil.GetRequestID(request.Context())

	if errors.Is(err, context.Canceled) {
		logger.DebugContext(request.Context(), "api_request_cancelled",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		writeError(writer, apperr.ClientClosedRequest())
		return
	}

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: the cause is logged below but hidden from the client.
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", requestID),
			slog.Any("cause", cause(err, appError)),
		)
	}

	writeError(writer, appError)
}

func writeError(writer http.ResponseWriter, appError *apperr.AppError) {
	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

// cause prefers the AppError's own cause, falling back to the full chain
// (which carries the service-level wrapping context).
func cause(err error, appError *apperr.AppError) error {
	if appError.Cause != nil {
		return appError.Cause
	}
	if err != error(appError) {
		return err
	}
	return nil
}
