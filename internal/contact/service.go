// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/cinelist/internal/platform/apperr"
	"github.com/taibuivan/cinelist/internal/platform/ctxutil"
	"github.com/taibuivan/cinelist/internal/platform/validate"
)

const (
	maxNameLength    = 100
	maxEmailLength   = 254
	maxMessageLength = 5000
)

// Service validates and forwards contact submissions.
type Service struct {
	sender Sender
}

// NewService constructs a new [Service].
func NewService(sender Sender) *Service {
	return &Service{sender: sender}
}

/*
Submit validates message and hands it to the sender.

Returns:
  - error: 400 "All fields are required" or field validation, 500 "Server error" on delivery failure
*/
func (service *Service) Submit(ctx context.Context, message Message) error {
	message.Name = strings.TrimSpace(message.Name)
	message.Email = strings.TrimSpace(message.Email)

	if message.Name == "" || message.Email == "" || strings.TrimSpace(message.Body) == "" {
		v := &validate.Validator{}
		v.Required("name", message.Name).Required("email", message.Email).Required("message", message.Body)
		return apperr.ValidationError("All fields are required", apperr.As(v.Err()).Details...)
	}

	v := &validate.Validator{}
	v.Email("email", message.Email).
		MaxLen("name", message.Name, maxNameLength).
		MaxLen("email", message.Email, maxEmailLength).
		MaxLen("message", message.Body, maxMessageLength)
	if err := v.Err(); err != nil {
		return err
	}

	if err := service.sender.Send(ctx, message); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "contact_delivery_failed", slog.Any("error", err))
		failure := apperr.Internal(fmt.Errorf("contact_service_send_failed: %w", err))
		failure.Message = "Server error"
		return failure
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "contact_message_sent", slog.String("email", message.Email))
	return nil
}
