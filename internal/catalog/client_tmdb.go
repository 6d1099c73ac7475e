// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/taibuivan/cinelist/internal/platform/constants"
)

// DefaultTMDBBaseURL is the public TMDB v3 API root.
const DefaultTMDBBaseURL = "https://api.themoviedb.org/3"

// maxErrorBody caps how much of an unexpected upstream body is kept for logs.
const maxErrorBody = 512

// TMDBClient implements [Catalog] against the TMDB v3 REST API.
type TMDBClient struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
}

// TMDBOption customizes a [TMDBClient].
type TMDBOption func(*TMDBClient)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) TMDBOption {
	return func(client *TMDBClient) {
		client.httpClient = httpClient
	}
}

// NewTMDBClient constructs a client. An empty baseURL selects [DefaultTMDBBaseURL];
// an empty language leaves the upstream default (en-US).
func NewTMDBClient(baseURL, apiKey, language string, options ...TMDBOption) *TMDBClient {
	if baseURL == "" {
		baseURL = DefaultTMDBBaseURL
	}

	client := &TMDBClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		language:   language,
		httpClient: &http.Client{Timeout: constants.CatalogTimeout},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// popularResponse is the paged envelope of TMDB list endpoints.
type popularResponse struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// GetMovie fetches /movie/{id}.
func (client *TMDBClient) GetMovie(ctx context.Context, movieID string) (*MovieDetail, error) {
	var movie MovieDetail
	if err := client.get(ctx, "/movie/"+url.PathEscape(movieID), nil, ErrMovieNotFound, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// ListPopular fetches /movie/popular and returns its results array.
func (client *TMDBClient) ListPopular(ctx context.Context, page int) ([]MovieSummary, error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}

	var response popularResponse
	if err := client.get(ctx, "/movie/popular", query, nil, &response); err != nil {
		return nil, err
	}

	if response.Results == nil {
		return []MovieSummary{}, nil
	}
	return response.Results, nil
}

/*
get performs one authenticated GET and decodes the JSON body into target.

A 404 maps to notFound when it is non-nil. Every other failure (transport,
non-2xx, undecodable body) becomes a 502 carrying the cause for logs.
*/
func (client *TMDBClient) get(ctx context.Context, path string, query url.Values, notFound error, target any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", client.apiKey)
	if client.language != "" {
		query.Set("language", client.language)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return upstreamFailure(fmt.Errorf("tmdb_request_build_failed: %w", err))
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		// url.Error embeds the full URL, api_key included.
		var urlError *url.Error
		if errors.As(err, &urlError) {
			err = urlError.Err
		}
		return upstreamFailure(fmt.Errorf("tmdb_request_failed: %s: %w", path, err))
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound && notFound != nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return notFound
	}

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return upstreamFailure(fmt.Errorf("tmdb_unexpected_status: %s: %d: %s", path, response.StatusCode, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return upstreamFailure(fmt.Errorf("tmdb_decode_failed: %s: %w", path, err))
	}

	return nil
}
