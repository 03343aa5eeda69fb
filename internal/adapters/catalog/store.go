// Package catalog provides the movie catalog store and dataset loading.
package catalog

import (
	"context"
	"sort"

	"github.com/okian/rentals/internal/domain/model"
	"github.com/okian/rentals/internal/domain/types"
)

// Store provides read access to the catalog.
type Store interface {
	// Lookup resolves a movie by ID.
	Lookup(ctx context.Context, movieID string) (model.Movie, bool)

	// List returns every movie ordered by ID.
	List(ctx context.Context) []types.CatalogEntry

	// Count returns the number of movies in the catalog.
	Count(ctx context.Context) int
}

// InMemoryStore is a read-only map-backed Store. It is safe for concurrent reads.
type InMemoryStore struct {
	movies map[string]model.Movie
}

// NewInMemoryStore copies movies into a new store.
func NewInMemoryStore(movies map[string]model.Movie) *InMemoryStore {
	s := &InMemoryStore{movies: make(map[string]model.Movie, len(movies))}
	for id, m := range movies {
		s.movies[id] = m
	}
	return s
}

// Lookup resolves a movie by ID.
func (s *InMemoryStore) Lookup(_ context.Context, movieID string) (model.Movie, bool) {
	m, ok := s.movies[movieID]
	return m, ok
}

// List returns every movie ordered by ID.
func (s *InMemoryStore) List(_ context.Context) []types.CatalogEntry {
	out := make([]types.CatalogEntry, 0, len(s.movies))
	for id, m := range s.movies {
		out = append(out, types.CatalogEntry{ID: id, Title: m.Title, Category: string(m.Category)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of movies in the catalog.
func (s *InMemoryStore) Count(_ context.Context) int {
	return len(s.movies)
}
