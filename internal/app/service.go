// Package service provides the core business service that implements
// the dependencies required by the CLI and the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/rentals/internal/adapters/catalog"
	"github.com/okian/rentals/internal/domain/model"
	"github.com/okian/rentals/internal/domain/pricing"
	"github.com/okian/rentals/internal/domain/statement"
	"github.com/okian/rentals/internal/domain/types"
	"github.com/okian/rentals/pkg/logger"
	"github.com/okian/rentals/pkg/metrics"
)

// Error kinds reported in statement_errors_total.
const (
	errorKindMovieNotFound = "movie_not_found"
	errorKindInvalidInput  = "invalid_input"
	errorKindOther         = "other"
)

// ErrNotStarted is returned when the service is used before Start.
var ErrNotStarted = errors.New("service not started")

// Result is a rendered statement with its identifier.
type Result struct {
	ID        string
	Statement statement.Statement
	Text      string
}

// Service renders statements for customers against one catalog.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog   catalog.Store
	customers []model.Customer
	engine    *pricing.Engine
	renderer  *statement.Renderer

	// Configuration
	rules pricing.Rules

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRules sets the pricing rules used by the engine.
func WithRules(rules pricing.Rules) Option {
	return func(s *Service) {
		s.rules = rules
	}
}

// WithDataset sets the catalog and the known customers.
func WithDataset(ds *catalog.Dataset) Option {
	return func(s *Service) {
		if ds != nil && ds.Catalog != nil {
			s.catalog = ds.Catalog
			s.customers = ds.Customers
		}
	}
}

// WithCatalog sets the catalog without any known customers.
func WithCatalog(store catalog.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.catalog = store
			s.customers = nil
		}
	}
}

// New constructs a new Service with the sample dataset and default rules.
func New(opts ...Option) *Service {
	sample := catalog.Sample()
	s := &Service{
		catalog:   sample.Catalog,
		customers: sample.Customers,
		rules:     pricing.DefaultRules(),
		logger:    nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the pricing engine and renderer.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	engine, err := pricing.New(
		pricing.WithRules(s.rules),
		pricing.WithLogger(s.logger.Named("pricing")),
	)
	if err != nil {
		return fmt.Errorf("build pricing engine: %w", err)
	}
	s.engine = engine
	s.renderer = statement.NewRenderer(engine, statement.WithLogger(s.logger.Named("statement")))

	s.started = true
	s.logger.Info(ctx, "rental service started",
		logger.Int("movies", s.catalog.Count(ctx)),
		logger.Int("customers", len(s.customers)),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "rental service stopped")
}

// Statement renders one customer's statement. It either returns the complete
// text or an error; there is no partial output.
func (s *Service) Statement(ctx context.Context, customer model.Customer) (Result, error) {
	s.mu.RLock()
	renderer, started := s.renderer, s.started
	s.mu.RUnlock()
	if !started {
		return Result{}, ErrNotStarted
	}

	id := uuid.NewString()
	ctx = logger.WithFields(ctx, logger.String("statement_id", id), logger.String("customer", customer.Name))
	start := time.Now()

	st, err := renderer.Build(ctx, customer, s.catalog)
	if err != nil {
		kind := errorKind(err)
		metrics.RecordStatementError(kind)
		s.logger.Warn(ctx, "statement aborted", logger.String("kind", kind), logger.Error(err))
		return Result{}, err
	}
	text := renderer.Format(st)

	metrics.RecordStatementRendered()
	metrics.RecordStatementRentals(len(st.Lines))
	metrics.RecordStatementRenderDuration(float64(time.Since(start).Microseconds()) / 1000)
	s.logger.Debug(ctx, "statement rendered", logger.Int("rentals", len(st.Lines)))

	return Result{ID: id, Statement: st, Text: text}, nil
}

// Statements renders every known customer in dataset order. The first failure
// aborts the run.
func (s *Service) Statements(ctx context.Context) ([]Result, error) {
	s.mu.RLock()
	customers := s.customers
	s.mu.RUnlock()

	out := make([]Result, 0, len(customers))
	for _, c := range customers {
		res, err := s.Statement(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// Customer returns a known customer by name.
func (s *Service) Customer(name string) (model.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.Name == name {
			return c, true
		}
	}
	return model.Customer{}, false
}

// Movies lists the catalog.
func (s *Service) Movies(ctx context.Context) []types.CatalogEntry {
	return s.catalog.List(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":   s.started,
		"movies":    s.catalog.Count(context.Background()),
		"customers": len(s.customers),
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, statement.ErrMovieNotFound):
		return errorKindMovieNotFound
	case errors.Is(err, pricing.ErrInvalidInput):
		return errorKindInvalidInput
	default:
		return errorKindOther
	}
}
