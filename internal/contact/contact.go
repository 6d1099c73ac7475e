// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package contact handles the public "contact us" form.

A validated submission is forwarded by a [Sender] to a fixed recipient
mailbox. Without SMTP settings the message is only logged.
*/
package contact

import (
	"context"
	"log/slog"

	"github.com/taibuivan/cinelist/internal/platform/ctxutil"
)

// Message is one contact form submission.
type Message struct {
	Name  string
	Email string
	Body  string
}

// Sender delivers a [Message] to the site owner.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// LogSender writes submissions to the request log instead of mailing them.
type LogSender struct{}

// Send implements [Sender].
func (LogSender) Send(ctx context.Context, message Message) error {
	ctxutil.GetLogger(ctx).InfoContext(ctx, "contact_message_logged",
		slog.String("name", message.Name),
		slog.String("email", message.Email),
		slog.Int("body_length", len(message.Body)),
	)
	return nil
}
