// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// implicitTLSPort is the SMTPS port where TLS starts before the greeting.
const implicitTLSPort = 465

// SMTPSender delivers contact messages through an SMTP relay.
//
// The submitter's address goes into Reply-To; the envelope and From header
// always use the authenticated account so relays accept the message.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	recipient string
	timeout   time.Duration
}

// NewSMTPSender constructs a sender. The username doubles as the From address.
func NewSMTPSender(host string, port int, username, password, recipient string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		recipient: recipient,
		timeout:   10 * time.Second,
	}
}

// Send implements [Sender].
func (sender *SMTPSender) Send(ctx context.Context, message Message) error {
	from := sender.username
	if from == "" {
		from = "no-reply@" + sender.host
	}

	return sender.sendSMTP(ctx, from, buildMessage(from, sender.recipient, message))
}

// buildMessage renders an RFC 5322 plain-text message.
func buildMessage(from, to string, message Message) string {
	name := headerSafe(message.Name)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("From: %s\r\n", from))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", to))
	builder.WriteString(fmt.Sprintf("Reply-To: %s\r\n", headerSafe(message.Email)))
	builder.WriteString(fmt.Sprintf("Subject: Contact Us Form Submission from %s\r\n", name))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(fmt.Sprintf("Message from: %s\r\n\r\nEmail: %s\r\n\r\nMessage:\r\n", name, headerSafe(message.Email)))
	builder.WriteString(strings.ReplaceAll(message.Body, "\n", "\r\n"))
	builder.WriteString("\r\n")

	return builder.String()
}

// headerSafe strips line breaks so user input cannot inject headers.
func headerSafe(value string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(value))
}

func (sender *SMTPSender) sendSMTP(ctx context.Context, from, body string) error {
	address := net.JoinHostPort(sender.host, strconv.Itoa(sender.port))
	tlsConfig := &tls.Config{ServerName: sender.host, MinVersion: tls.VersionTLS12}

	dialer := &net.Dialer{Timeout: sender.timeout}
	var (
		connection net.Conn
		err        error
	)
	if sender.port == implicitTLSPort {
		connection, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", address)
	} else {
		connection, err = dialer.DialContext(ctx, "tcp", address)
	}
	if err != nil {
		return fmt.Errorf("smtp_connect_failed: %w", err)
	}
	defer func() { _ = connection.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = connection.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(connection, sender.host)
	if err != nil {
		return fmt.Errorf("smtp_client_failed: %w", err)
	}
	defer func() { _ = client.Close() }()

	if sender.port != implicitTLSPort {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("smtp_starttls_failed: %w", err)
			}
		}
	}

	if sender.username != "" && sender.password != "" {
		if err := client.Auth(smtp.PlainAuth("", sender.username, sender.password, sender.host)); err != nil {
			return fmt.Errorf("smtp_auth_failed: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp_mail_from_failed: %w", err)
	}
	if err := client.Rcpt(sender.recipient); err != nil {
		return fmt.Errorf("smtp_rcpt_failed: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp_data_failed: %w", err)
	}
	if _, err := writer.Write([]byte(body)); err != nil {
		return fmt.Errorf("smtp_write_failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("smtp_data_close_failed: %w", err)
	}

	return client.Quit()
}
