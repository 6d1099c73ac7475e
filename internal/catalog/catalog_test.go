// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"sync"

	"github.com/taibuivan/cinelist/internal/catalog"
)

// stubCatalog is a scripted [catalog.Catalog] counting its calls.
type stubCatalog struct {
	mu      sync.Mutex
	calls   int
	movie   *catalog.MovieDetail
	popular []catalog.MovieSummary
	err     error
}

func (stub *stubCatalog) GetMovie(_ context.Context, _ string) (*catalog.MovieDetail, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.calls++
	if stub.err != nil {
		return nil, stub.err
	}
	return stub.movie, nil
}

func (stub *stubCatalog) ListPopular(_ context.Context, _ int) ([]catalog.MovieSummary, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.calls++
	if stub.err != nil {
		return nil, stub.err
	}
	return stub.popular, nil
}

func (stub *stubCatalog) callCount() int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.calls
}
