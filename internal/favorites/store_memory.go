// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package favorites

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepository implements [Repository] in process memory.
//
// Each user row carries its own mutex, so updates for one user serialize
// while different users proceed in parallel. Used for local runs
// (STORE_DRIVER=memory) and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*memoryUser
}

type memoryUser struct {
	mu        sync.Mutex
	favorites []string
}

// NewMemoryRepository creates a store seeded with empty-favorites users.
func NewMemoryRepository(userIDs ...string) *MemoryRepository {
	repository := &MemoryRepository{users: make(map[string]*memoryUser, len(userIDs))}
	for _, userID := range userIDs {
		repository.CreateUser(userID)
	}
	return repository
}

// CreateUser registers a user with an empty list. Existing users are kept as is.
func (repository *MemoryRepository) CreateUser(userID string) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.users[userID]; !exists {
		repository.users[userID] = &memoryUser{favorites: []string{}}
	}
}

func (repository *MemoryRepository) lookup(userID string) (*memoryUser, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, exists := repository.users[userID]
	if !exists {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListFavorites implements [Repository].
func (repository *MemoryRepository) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := repository.lookup(userID)
	if err != nil {
		return nil, err
	}

	user.mu.Lock()
	defer user.mu.Unlock()
	return slices.Clone(user.favorites), nil
}

// UpdateFavorites implements [Repository].
func (repository *MemoryRepository) UpdateFavorites(ctx context.Context, userID string, mutate Mutation) error {
	user, err := repository.lookup(userID)
	if err != nil {
		return err
	}

	user.mu.Lock()
	defer user.mu.Unlock()

	// A caller that gave up while waiting for the lock abandons cleanly.
	if err := ctx.Err(); err != nil {
		return err
	}

	next, err := mutate(slices.Clone(user.favorites))
	if err != nil {
		return err
	}

	if next == nil {
		next = []string{}
	}
	user.favorites = next
	return nil
}
