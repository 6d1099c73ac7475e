// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/cinelist/internal/catalog"
	requestutil "github.com/taibuivan/cinelist/internal/platform/request"
	"github.com/taibuivan/cinelist/internal/platform/respond"
	"github.com/taibuivan/cinelist/internal/platform/validate"
)

// maxMovieIDLength bounds a reference; catalog ids are short numeric strings.
const maxMovieIDLength = 64

// Handler implements the HTTP layer for favorites.
//
// # Security
//
// Every route requires the identity resolved by middleware.RequireUser.
type Handler struct {
	favoritesService *Service
}

// NewHandler constructs a new favorites [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{favoritesService: service}
}

// Routes returns a [chi.Router] configured with the favorites endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/add", handler.add)
	router.Post("/remove", handler.remove)

	return router
}

// favoriteRequest is the body of add and remove.
type favoriteRequest struct {
	MovieID MovieID `json:"movieId"`
}

type listResponse struct {
	Favorites []catalog.MovieDetail `json:"favorites"`
}

type addResponse struct {
	Movie string `json:"movie"`
}

/*
GET /favorites.

Response:
  - 200: listResponse: Enriched favorites in stored order
  - 401: Unauthorized
  - 404: ErrUserNotFound
  - 502/503: Catalog failure
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movies, err := handler.favoritesService.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, listResponse{Favorites: movies})
}

/*
POST /favorites/add.

Request:
  - body: favoriteRequest

Response:
  - 200: addResponse: The added reference
  - 400: ErrAlreadyFavorite or validation failure
  - 401: Unauthorized
  - 404: ErrUserNotFound
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, movieID, ok := handler.decode(writer, request)
	if !ok {
		return
	}

	added, err := handler.favoritesService.Add(request.Context(), userID, movieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, addResponse{Movie: added})
}

/*
POST /favorites/remove.

Request:
  - body: favoriteRequest

Response:
  - 200: text/plain confirmation
  - 400: ErrNotFavorite or validation failure
  - 401: Unauthorized
  - 404: ErrUserNotFound
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, movieID, ok := handler.decode(writer, request)
	if !ok {
		return
	}

	if err := handler.favoritesService.Remove(request.Context(), userID, movieID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Text(writer, http.StatusOK, "Removed from favorites")
}

// decode resolves the caller and validates the movieId body shared by add and remove.
// On failure the error response is already written.
func (handler *Handler) decode(writer http.ResponseWriter, request *http.Request) (string, string, bool) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}

	var input favoriteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}

	movieID := input.MovieID.String()
	v := &validate.Validator{}
	v.Required("movieId", movieID).
		MovieID("movieId", movieID).
		MaxLen("movieId", movieID, maxMovieIDLength)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}

	return userID, movieID, true
}
