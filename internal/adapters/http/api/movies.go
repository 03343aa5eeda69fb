// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/rentals/internal/domain/types"
)

// MoviesLister defines the catalog read dependency.
type MoviesLister interface {
	Movies(ctx context.Context) []types.CatalogEntry
}

// MoviesHandler handles catalog requests.
type MoviesHandler struct {
	deps MoviesLister
}

// NewMoviesHandler creates a new movies handler.
func NewMoviesHandler(deps MoviesLister) *MoviesHandler {
	return &MoviesHandler{deps: deps}
}

// HandleListMovies handles GET /movies requests.
func (h *MoviesHandler) HandleListMovies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Movies(r.Context()))
}
