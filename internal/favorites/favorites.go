// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package favorites manages each user's list of favorite movie references.

The list has set semantics over opaque catalog identifiers: a reference is
present at most once, adding a present one or removing an absent one is a
conflict that leaves the list untouched.

# Architecture

  - Repository: Persistence contract with an atomic per-user update primitive.
  - Service: Membership rules and catalog enrichment.
  - Handler: The /favorites HTTP surface, mounted behind the auth gate.
*/
package favorites

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/taibuivan/cinelist/internal/platform/apperr"
)

// # Errors

var (
	// ErrAlreadyFavorite is returned when adding a reference already in the list.
	ErrAlreadyFavorite = apperr.BadRequest("ALREADY_FAVORITE", "Movie already in favorites")

	// ErrNotFavorite is returned when removing a reference absent from the list.
	ErrNotFavorite = apperr.BadRequest("NOT_FAVORITE", "Movie not in favorites")

	// ErrUserNotFound is returned when the resolved identity has no stored user.
	ErrUserNotFound = apperr.NotFound("User")
)

// # Domain Types

// MovieID is an opaque catalog reference.
//
// It decodes from either a JSON string or a JSON integer, since catalog ids
// are numeric but clients send both forms.
type MovieID string

// UnmarshalJSON implements [json.Unmarshaler].
func (id *MovieID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*id = MovieID(strings.TrimSpace(text))
		return nil
	}

	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("movie id must be a string or an integer, got %s", raw)
	}
	*id = MovieID(strconv.FormatInt(number, 10))
	return nil
}

// String returns the reference as stored.
func (id MovieID) String() string { return string(id) }

// # Repository Contracts

// Mutation computes the next favorites list from the current one.
//
// Returning an error aborts the update and nothing is persisted. The input
// slice belongs to the caller's snapshot and may be modified freely.
type Mutation func(current []string) ([]string, error)

// Repository is the persistence contract for user favorites.
type Repository interface {
	/*
		ListFavorites returns the stored references in insertion order.

		Returns:
		  - []string: Favorites (never nil)
		  - error: ErrUserNotFound or storage failures
	*/
	ListFavorites(ctx context.Context, userID string) ([]string, error)

	/*
		UpdateFavorites applies mutate to the user's list atomically.

		No concurrent update for the same user can interleave between the read
		handed to mutate and the write of its result.

		Returns:
		  - error: ErrUserNotFound, the mutation's error, or storage failures
	*/
	UpdateFavorites(ctx context.Context, userID string, mutate Mutation) error
}
