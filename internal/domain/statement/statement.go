// Package statement builds and formats per-customer rental statements.
package statement

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/rentals/internal/domain/model"
	"github.com/okian/rentals/internal/domain/pricing"
	"github.com/okian/rentals/pkg/logger"
	"github.com/shopspring/decimal"
)

// Catalog resolves movie IDs. Implementations must be safe for reads during a call.
type Catalog interface {
	Lookup(ctx context.Context, movieID string) (model.Movie, bool)
}

// Statement is the computed content of a customer's bill.
type Statement struct {
	Customer string
	Lines    []model.RentalSummary
	Total    decimal.Decimal
	Points   int
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithLabelWidth sets the title column width.
func WithLabelWidth(width int) Option {
	return func(r *Renderer) {
		if width > len(ellipsis) {
			r.labelWidth = width
		}
	}
}

// WithAmountWidth sets the amount column width.
func WithAmountWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.amountWidth = width
		}
	}
}

// WithLogger sets a custom logger for the renderer.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// Renderer turns a customer's rentals into a statement.
type Renderer struct {
	pricer      pricing.Pricer
	labelWidth  int
	amountWidth int
	logger      logger.Logger
}

// NewRenderer creates a renderer that prices rentals with pricer.
func NewRenderer(pricer pricing.Pricer, opts ...Option) *Renderer {
	r := &Renderer{
		pricer:      pricer,
		labelWidth:  defaultLabelWidth,
		amountWidth: defaultAmountWidth,
		logger:      logger.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Build prices every rental in order. Any failure aborts the whole statement.
func (r *Renderer) Build(ctx context.Context, customer model.Customer, catalog Catalog) (Statement, error) {
	st := Statement{
		Customer: customer.Name,
		Lines:    make([]model.RentalSummary, 0, len(customer.Rentals)),
		Total:    decimal.Zero,
	}

	for i, rental := range customer.Rentals {
		movie, ok := catalog.Lookup(ctx, rental.MovieID)
		if !ok {
			return Statement{}, fmt.Errorf("%w: %q (rental %d of %s)", ErrMovieNotFound, rental.MovieID, i+1, customer.Name)
		}

		charge, err := r.pricer.Charge(ctx, movie.Category, rental.Days)
		if err != nil {
			return Statement{}, fmt.Errorf("price rental %d (%s) of %s: %w", i+1, rental.MovieID, customer.Name, err)
		}

		// Round per line so the total always equals the sum of printed amounts.
		amount := charge.Amount.Round(amountPlaces)
		st.Total = st.Total.Add(amount)
		st.Points += charge.Points
		st.Lines = append(st.Lines, model.RentalSummary{Title: movie.Title, Amount: amount})
	}

	r.logger.Debug(ctx, "statement built",
		logger.String("customer", customer.Name),
		logger.Int("rentals", len(st.Lines)),
		logger.String("total", st.Total.StringFixed(amountPlaces)),
		logger.Int("points", st.Points),
	)
	return st, nil
}

// Render builds the statement and formats it as text.
func (r *Renderer) Render(ctx context.Context, customer model.Customer, catalog Catalog) (string, error) {
	st, err := r.Build(ctx, customer, catalog)
	if err != nil {
		return "", err
	}
	return r.Format(st), nil
}

// Format lays out a built statement. Output ends with a newline.
func (r *Renderer) Format(st Statement) string {
	lines := make([]string, 0, len(st.Lines)+6)
	lines = append(lines,
		"Rental Record for "+st.Customer,
		r.separator(),
	)
	for _, line := range st.Lines {
		lines = append(lines, formatLine(line.Title, line.Amount, r.labelWidth, r.amountWidth))
	}
	lines = append(lines,
		r.separator(),
		"Amount owed is"+formatAmount(st.Total, r.amountWidth),
		"Earned "+strconv.Itoa(st.Points)+" frequent renter points",
	)
	return strings.Join(lines, "\n") + "\n"
}

func (r *Renderer) separator() string {
	return formatLine("", decimal.Zero, r.labelWidth, r.amountWidth)
}
