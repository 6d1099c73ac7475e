// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cinelist/internal/api"
	"github.com/taibuivan/cinelist/internal/catalog"
	"github.com/taibuivan/cinelist/internal/contact"
	"github.com/taibuivan/cinelist/internal/favorites"
	"github.com/taibuivan/cinelist/internal/platform/config"
	"github.com/taibuivan/cinelist/internal/platform/sec"
)

type staticCatalog struct{}

func (staticCatalog) GetMovie(_ context.Context, movieID string) (*catalog.MovieDetail, error) {
	if movieID == "603" {
		return &catalog.MovieDetail{ID: 603, Title: "The Matrix"}, nil
	}
	return nil, catalog.ErrMovieNotFound
}

func (staticCatalog) ListPopular(context.Context, int) ([]catalog.MovieSummary, error) {
	return []catalog.MovieSummary{{ID: 603, Title: "The Matrix"}}, nil
}

func newTestServer(t *testing.T, checks []api.HealthCheck) (http.Handler, *sec.TokenService) {
	t.Helper()

	tokens, err := sec.NewHMACTokenService("test-secret-test-secret-test-secret", "")
	require.NoError(t, err)

	cfg := &config.Config{
		ServerPort:         "0",
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
		CORSAllowedOrigins: []string{"https://abmoviess.netlify.app"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	liveness, readiness := api.NewHealthHandlers(checks, slog.Default())
	server := api.NewServer(ctx, cfg, slog.Default(), tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(staticCatalog{}),
		Favorites: favorites.NewHandler(favorites.NewService(favorites.NewMemoryRepository("u1"), staticCatalog{})),
		Contact:   contact.NewHandler(contact.NewService(contact.LogSender{})),
	})

	return server.Handler(), tokens
}

func serve(handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestServer_PublicRoutes(t *testing.T) {
	handler, _ := newTestServer(t, nil)

	recorder := serve(handler, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `"done"`, recorder.Body.String())

	recorder = serve(handler, http.MethodGet, "/movies/popular", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "The Matrix")

	recorder = serve(handler, http.MethodGet, "/movies/1", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = serve(handler, http.MethodPost, "/contact", "", `{"name":"Neo","email":"neo@zion.io","message":"Hi"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = serve(handler, http.MethodGet, "/health", "", "")
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())

	recorder = serve(handler, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cinelist_http_requests_total")
}

/*
TestServer_FavoritesRequireToken exercises the real JWT verifier through the router.
*/
func TestServer_FavoritesRequireToken(t *testing.T) {
	handler, tokens := newTestServer(t, nil)

	recorder := serve(handler, http.MethodGet, "/favorites", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	token, err := tokens.Issue("u1", time.Hour)
	require.NoError(t, err)

	recorder = serve(handler, http.MethodPost, "/favorites/add", token, `{"movieId":603}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = serve(handler, http.MethodGet, "/favorites", token, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"title":"The Matrix"`)
}

func TestServer_Readiness(t *testing.T) {
	healthy, _ := newTestServer(t, []api.HealthCheck{
		{Name: "postgres", Check: func(context.Context) error { return nil }},
	})
	recorder := serve(healthy, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ready"`)

	degraded, _ := newTestServer(t, []api.HealthCheck{
		{Name: "postgres", Check: func(context.Context) error { return nil }},
		{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }},
	})
	recorder = serve(degraded, http.MethodGet, "/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"degraded"`)
	assert.Contains(t, recorder.Body.String(), "connection refused")
}
