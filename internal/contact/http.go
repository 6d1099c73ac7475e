// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contact

import (
	"net/http"

	requestutil "github.com/taibuivan/cinelist/internal/platform/request"
	"github.com/taibuivan/cinelist/internal/platform/respond"
)

// Handler implements the public contact endpoint.
type Handler struct {
	contactService *Service
}

// NewHandler constructs a new contact [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{contactService: service}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

/*
POST /contact.

Request:
  - body: contactRequest

Response:
  - 200: text/plain "Message sent successfully"
  - 400: Missing or invalid fields
  - 500: Delivery failure
*/
func (handler *Handler) Submit(writer http.ResponseWriter, request *http.Request) {
	var input contactRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.contactService.Submit(request.Context(), Message{
		Name:  input.Name,
		Email: input.Email,
		Body:  input.Message,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Text(writer, http.StatusOK, "Message sent successfully")
}
