// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	service "github.com/okian/rentals/internal/app"
	"github.com/okian/rentals/internal/domain/model"
	"github.com/okian/rentals/internal/domain/pricing"
	"github.com/okian/rentals/internal/domain/types"
	"github.com/okian/rentals/pkg/logger"
	"github.com/okian/rentals/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Statement renders one customer's statement.
	Statement(ctx context.Context, customer model.Customer) (service.Result, error)

	// Movies lists the catalog.
	Movies(ctx context.Context) []types.CatalogEntry
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	moviesHandler     *MoviesHandler
	statementsHandler *StatementsHandler
	logger            logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, l logger.Logger) *Server {
	if l == nil {
		l = logger.Nop()
	}
	return &Server{
		healthHandler:     NewHealthHandler(),
		moviesHandler:     NewMoviesHandler(deps),
		statementsHandler: NewStatementsHandler(deps),
		logger:            l,
	}
}

// Routes returns the router with all HTTP routes attached.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.logger))
	r.Use(MetricsMiddleware)

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	r.Get("/movies", s.moviesHandler.HandleListMovies)
	r.Post("/statements", s.statementsHandler.HandlePostStatement)
	return r
}

// statementRequest is the body of POST /statements.
type statementRequest struct {
	Customer string          `json:"customer"`
	Rentals  []rentalRequest `json:"rentals"`
}

// Days stays a json.Number so fractional values reach ParseDays intact.
type rentalRequest struct {
	MovieID string      `json:"movie_id"`
	Days    json.Number `json:"days"`
}

// customer validates the request and converts it. Day-count problems are
// reported as pricing.ErrInvalidInput; structural ones as ErrBadRequest.
func (req statementRequest) customer() (model.Customer, error) {
	if strings.TrimSpace(req.Customer) == "" {
		return model.Customer{}, errors.New("missing customer")
	}
	c := model.Customer{Name: req.Customer, Rentals: make([]model.Rental, 0, len(req.Rentals))}
	for _, r := range req.Rentals {
		if strings.TrimSpace(r.MovieID) == "" {
			return model.Customer{}, errors.New("missing movie_id")
		}
		days, err := pricing.ParseDays(r.Days.String())
		if err != nil {
			return model.Customer{}, err
		}
		c.Rentals = append(c.Rentals, model.Rental{MovieID: r.MovieID, Days: days})
	}
	return c, nil
}

type statementResponse struct {
	StatementID string                `json:"statement_id"`
	Customer    string                `json:"customer"`
	Lines       []types.StatementLine `json:"lines"`
	TotalAmount string                `json:"total_amount"`
	Points      int                   `json:"points"`
	Text        string                `json:"text"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
