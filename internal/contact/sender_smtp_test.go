// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	body := buildMessage("site@cinelist.dev", "owner@cinelist.dev", Message{
		Name:  "Neo\r\nBcc: victim@example.com",
		Email: "neo@zion.io",
		Body:  "line one\nline two",
	})

	headers, content, found := strings.Cut(body, "\r\n\r\n")
	assert.True(t, found)

	assert.Contains(t, headers, "From: site@cinelist.dev\r\n")
	assert.Contains(t, headers, "To: owner@cinelist.dev\r\n")
	assert.Contains(t, headers, "Reply-To: neo@zion.io\r\n")
	assert.Contains(t, headers, "Subject: Contact Us Form Submission from Neo  Bcc: victim@example.com")
	assert.NotContains(t, headers, "\r\nBcc:")

	assert.Contains(t, content, "line one\r\nline two")
}
