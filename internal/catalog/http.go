// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/cinelist/internal/platform/request"
	"github.com/taibuivan/cinelist/internal/platform/respond"
	"github.com/taibuivan/cinelist/internal/platform/validate"
)

// maxPopularPage is the deepest page TMDB serves for list endpoints.
const maxPopularPage = 500

// Handler implements the public movie browse endpoints.
type Handler struct {
	catalog Catalog
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// Routes returns a [chi.Router] configured with the browse endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/popular", handler.listPopular)
	router.Get("/{id}", handler.getMovie)

	return router
}

/*
GET /movies/popular.

Description: Proxies one page of TMDB popular movies.

Request:
  - page: int (Optional, 1..500, default 1)

Response:
  - 200: []MovieSummary: The upstream results array
  - 400: ErrValidation: Invalid page
  - 502/503: Upstream failure
*/
func (handler *Handler) listPopular(writer http.ResponseWriter, request *http.Request) {
	page := 1
	v := &validate.Validator{}
	if raw := request.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		v.Custom("page", err != nil || parsed < 1 || parsed > maxPopularPage, "Must be an integer between 1 and 500")
		page = parsed
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movies, err := handler.catalog.ListPopular(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, movies)
}

/*
GET /movies/{id}.

Description: Proxies the TMDB detail record of one movie.

Response:
  - 200: MovieDetail
  - 400: ErrValidation: Malformed identifier
  - 404: ErrNotFound: Unknown movie
  - 502/503: Upstream failure
*/
func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	movieID := requestutil.Param(request, "id")

	v := &validate.Validator{}
	v.Required("id", movieID).MovieID("id", movieID).MaxLen("id", movieID, 64)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.catalog.GetMovie(request.Context(), movieID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, movie)
}
