// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinelist/internal/catalog"
	"github.com/taibuivan/cinelist/internal/platform/apperr"
)

const testAPIKey = "secret-key"

func newTMDBServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/3/movie/603", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, testAPIKey, request.URL.Query().Get("api_key"))
		assert.Equal(t, "fr-FR", request.URL.Query().Get("language"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":603,"title":"The Matrix","runtime":136,"genres":[{"id":28,"name":"Action"}],"vote_average":8.2}`))
	})
	mux.HandleFunc("/3/movie/popular", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "2", request.URL.Query().Get("page"))
		_, _ = writer.Write([]byte(`{"page":2,"results":[{"id":550,"title":"Fight Club","genre_ids":[18]}],"total_pages":9}`))
	})
	mux.HandleFunc("/3/movie/500", func(writer http.ResponseWriter, _ *http.Request) {
		http.Error(writer, `{"status_message":"Internal error"}`, http.StatusInternalServerError)
	})
	mux.HandleFunc("/3/movie/garbled", func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{"id":`))
	})
	mux.HandleFunc("/3/", func(writer http.ResponseWriter, _ *http.Request) {
		http.Error(writer, `{"status_code":34}`, http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestTMDBClient_GetMovie(t *testing.T) {
	server := newTMDBServer(t)
	client := catalog.NewTMDBClient(server.URL+"/3/", testAPIKey, "fr-FR", catalog.WithHTTPClient(server.Client()))

	movie, err := client.GetMovie(context.Background(), "603")
	require.NoError(t, err)
	assert.Equal(t, int64(603), movie.ID)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, 136, movie.Runtime)
	require.Len(t, movie.Genres, 1)
	assert.Equal(t, "Action", movie.Genres[0].Name)
}

func TestTMDBClient_Errors(t *testing.T) {
	server := newTMDBServer(t)
	client := catalog.NewTMDBClient(server.URL+"/3", testAPIKey, "fr-FR")

	t.Run("unknown_movie", func(t *testing.T) {
		_, err := client.GetMovie(context.Background(), "999999")
		assert.ErrorIs(t, err, catalog.ErrMovieNotFound)
	})

	t.Run("upstream_5xx", func(t *testing.T) {
		_, err := client.GetMovie(context.Background(), "500")
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "BAD_GATEWAY"))
		assert.Contains(t, apperr.As(err).Cause.Error(), "500")
	})

	t.Run("undecodable_body", func(t *testing.T) {
		_, err := client.GetMovie(context.Background(), "garbled")
		assert.True(t, apperr.HasCode(err, "BAD_GATEWAY"))
	})
}

func TestTMDBClient_TransportErrorHidesAPIKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := catalog.NewTMDBClient(baseURL, testAPIKey, "")
	_, err := client.GetMovie(context.Background(), "603")

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "BAD_GATEWAY", appErr.Code)
	assert.NotContains(t, appErr.Cause.Error(), testAPIKey)
}

func TestTMDBClient_ListPopular(t *testing.T) {
	server := newTMDBServer(t)
	client := catalog.NewTMDBClient(server.URL+"/3", testAPIKey, "fr-FR")

	movies, err := client.ListPopular(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Fight Club", movies[0].Title)
	assert.Equal(t, []int{18}, movies[0].GenreIDs)
}
