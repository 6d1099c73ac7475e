// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/cinelist/internal/catalog"
	"github.com/taibuivan/cinelist/internal/platform/apperr"
	"github.com/taibuivan/cinelist/internal/platform/constants"
	"github.com/taibuivan/cinelist/internal/platform/ctxutil"
	"github.com/taibuivan/cinelist/internal/platform/metrics"
	"github.com/taibuivan/cinelist/pkg/slice"
)

// MovieResolver resolves a favorite reference into displayable detail.
type MovieResolver interface {
	GetMovie(ctx context.Context, movieID string) (*catalog.MovieDetail, error)
}

// # Service Layer

// Service enforces favorites membership rules for one resolved identity.
type Service struct {
	repository Repository
	movies     MovieResolver
}

// NewService constructs a new [Service].
func NewService(repository Repository, movies MovieResolver) *Service {
	return &Service{repository: repository, movies: movies}
}

/*
IDs returns the raw stored references of a user without enrichment.
*/
func (service *Service) IDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := service.repository.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("favorites_service_list_failed: %w", err)
	}
	return ids, nil
}

/*
List returns the user's favorites expanded to catalog detail, in stored order.

Description: References are resolved concurrently with a bounded fan-out.
A reference the catalog no longer knows is skipped with a warning and stays
stored. Any other catalog failure fails the whole call.

Returns:
  - []catalog.MovieDetail: Enriched favorites (never nil)
  - error: ErrUserNotFound, 502/503 catalog errors, or storage failures
*/
func (service *Service) List(ctx context.Context, userID string) ([]catalog.MovieDetail, error) {
	ids, err := service.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(ctx)
	resolved := make([]*catalog.MovieDetail, len(ids))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(constants.EnrichmentConcurrency)

	for index, movieID := range ids {
		group.Go(func() error {
			movie, err := service.movies.GetMovie(groupCtx, movieID)
			if errors.Is(err, catalog.ErrMovieNotFound) {
				logger.WarnContext(ctx, "favorite_reference_unresolvable", slog.String("movie_id", movieID))
				return nil
			}
			if err != nil {
				return err
			}
			resolved[index] = movie
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("favorites_service_enrich_cancelled: %w", err)
		}
		if !apperr.IsAppError(err) {
			err = apperr.BadGateway("Movie catalog request failed", err)
		}
		return nil, fmt.Errorf("favorites_service_enrich_failed: %w", err)
	}

	movies := make([]catalog.MovieDetail, 0, len(ids))
	for _, movie := range resolved {
		if movie != nil {
			movies = append(movies, *movie)
		}
	}
	return movies, nil
}

/*
Add appends movieID to the user's favorites.

Returns:
  - string: The added reference
  - error: ErrAlreadyFavorite (nothing written), ErrUserNotFound, or storage failures
*/
func (service *Service) Add(ctx context.Context, userID, movieID string) (string, error) {
	err := service.repository.UpdateFavorites(ctx, userID, func(current []string) ([]string, error) {
		if slices.Contains(current, movieID) {
			return nil, ErrAlreadyFavorite
		}
		return append(current, movieID), nil
	})
	if err != nil {
		recordMutation("add", err)
		return "", fmt.Errorf("favorites_service_add_failed: %w", err)
	}

	recordMutation("add", nil)
	ctxutil.GetLogger(ctx).InfoContext(ctx, "favorite_added", slog.String("movie_id", movieID))

	return movieID, nil
}

/*
Remove deletes movieID from the user's favorites.

Returns:
  - error: ErrNotFavorite (nothing written), ErrUserNotFound, or storage failures
*/
func (service *Service) Remove(ctx context.Context, userID, movieID string) error {
	err := service.repository.UpdateFavorites(ctx, userID, func(current []string) ([]string, error) {
		if !slices.Contains(current, movieID) {
			return nil, ErrNotFavorite
		}
		return slice.Filter(current, func(stored string) bool { return stored != movieID }), nil
	})
	if err != nil {
		recordMutation("remove", err)
		return fmt.Errorf("favorites_service_remove_failed: %w", err)
	}

	recordMutation("remove", nil)
	ctxutil.GetLogger(ctx).InfoContext(ctx, "favorite_removed", slog.String("movie_id", movieID))

	return nil
}

func recordMutation(operation string, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, ErrAlreadyFavorite), errors.Is(err, ErrNotFavorite):
		outcome = "conflict"
	case errors.Is(err, ErrUserNotFound):
		outcome = "user_not_found"
	case err != nil:
		outcome = "error"
	}
	metrics.FavoritesMutations.WithLabelValues(operation, outcome).Inc()
}
