// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog proxies the upstream movie catalog (TMDB).

It serves the public browse endpoints and resolves favorite references into
displayable movie detail for the favorites listing.

# Architecture

  - Catalog: The read-only contract every layer implements.
  - TMDBClient: The HTTP adapter talking to the upstream API.
  - BreakerCatalog: Trips after repeated upstream failures and fails fast.
  - RedisCache: Optional read-through cache in front of the breaker.

Layers compose as decorators: RedisCache -> BreakerCatalog -> TMDBClient.
*/
package catalog

import (
	"context"

	"github.com/taibuivan/cinelist/internal/platform/apperr"
)

// # Domain Entities

// Genre is a TMDB genre attached to a movie detail.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the full record returned by TMDB for a single movie.
//
// Field names follow the upstream payload so the web client can consume the
// proxied response unchanged.
type MovieDetail struct {
	ID               int64   `json:"id"`
	IMDbID           string  `json:"imdb_id,omitempty"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Tagline          string  `json:"tagline,omitempty"`
	Overview         string  `json:"overview"`
	Status           string  `json:"status,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	Runtime          int     `json:"runtime"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Genres           []Genre `json:"genres"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Adult            bool    `json:"adult"`
}

// MovieSummary is one entry of a TMDB list endpoint such as /movie/popular.
type MovieSummary struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Adult            bool    `json:"adult"`
}

// # Errors

var (
	// ErrMovieNotFound is returned when the upstream catalog has no such movie.
	ErrMovieNotFound = apperr.NotFound("Movie")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = apperr.ServiceUnavailable("Movie catalog is temporarily unavailable")
)

// upstreamFailure wraps any other upstream failure as a 502.
func upstreamFailure(cause error) error {
	return apperr.BadGateway("Movie catalog request failed", cause)
}

// # Contracts

// Catalog is the read-only movie catalog.
type Catalog interface {
	/*
		GetMovie resolves one opaque movie reference.

		Returns:
		  - *MovieDetail: The upstream record
		  - error: ErrMovieNotFound, ErrUnavailable or a 502 AppError
	*/
	GetMovie(ctx context.Context, movieID string) (*MovieDetail, error)

	/*
		ListPopular returns one page (1-based) of the popular movies list.
	*/
	ListPopular(ctx context.Context, page int) ([]MovieSummary, error)
}
