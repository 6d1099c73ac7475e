// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinelist/internal/contact"
	"github.com/taibuivan/cinelist/internal/platform/apperr"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, message contact.Message) error {
	return m.Called(ctx, message).Error(0)
}

func TestService_Submit(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, contact.Message{Name: "Neo", Email: "neo@zion.io", Body: "Hello"}).Return(nil)

	err := contact.NewService(sender).Submit(context.Background(), contact.Message{
		Name:  "  Neo ",
		Email: "neo@zion.io",
		Body:  "Hello",
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestService_SubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		message contact.Message
		errText string
	}{
		{"missing_name", contact.Message{Email: "neo@zion.io", Body: "Hi"}, "All fields are required"},
		{"missing_email", contact.Message{Name: "Neo", Body: "Hi"}, "All fields are required"},
		{"blank_message", contact.Message{Name: "Neo", Email: "neo@zion.io", Body: "   "}, "All fields are required"},
		{"bad_email", contact.Message{Name: "Neo", Email: "not-an-email", Body: "Hi"}, "Validation failed"},
		{"long_message", contact.Message{Name: "Neo", Email: "neo@zion.io", Body: strings.Repeat("x", 5001)}, "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockSender{}
			err := contact.NewService(sender).Submit(context.Background(), tt.message)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.Equal(t, tt.errText, appErr.Message)
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestService_SubmitDeliveryFailure(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp_auth_failed"))

	err := contact.NewService(sender).Submit(context.Background(), contact.Message{Name: "Neo", Email: "neo@zion.io", Body: "Hi"})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Equal(t, "Server error", appErr.Message)
}

func TestHandler_Submit(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)
	handler := contact.NewHandler(contact.NewService(sender))

	recorder := httptest.NewRecorder()
	handler.Submit(recorder, httptest.NewRequest(http.MethodPost, "/contact",
		strings.NewReader(`{"name":"Neo","email":"neo@zion.io","message":"There is no spoon"}`)))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Message sent successfully", recorder.Body.String())

	recorder = httptest.NewRecorder()
	handler.Submit(recorder, httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"Neo"}`)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "All fields are required")
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, contact.LogSender{}.Send(context.Background(), contact.Message{Name: "Neo"}))
}
