// Package model contains domain models passed between layers.
package model

import "github.com/shopspring/decimal"

// Category selects the pricing rule applied to a movie.
type Category string

// Known categories. Catalog data may still carry other codes.
const (
	CategoryRegular    Category = "regular"
	CategoryChildren   Category = "children"
	CategoryNewRelease Category = "new-release"
)

// Categories returns the closed set of categories with a pricing rule.
func Categories() []Category {
	return []Category{CategoryRegular, CategoryChildren, CategoryNewRelease}
}

// Known reports whether c is one of the built-in categories.
func (c Category) Known() bool {
	switch c {
	case CategoryRegular, CategoryChildren, CategoryNewRelease:
		return true
	default:
		return false
	}
}

func (c Category) String() string { return string(c) }

// Movie is a catalog entry. Movies are keyed by ID in the catalog.
type Movie struct {
	Title    string
	Category Category
}

// Rental references a catalog movie by ID.
type Rental struct {
	MovieID string
	Days    int
}

// Customer owns an ordered list of rentals; statement lines follow that order.
type Customer struct {
	Name    string
	Rentals []Rental
}

// Charge is the priced result of a single rental.
type Charge struct {
	Amount decimal.Decimal
	Points int
}

// RentalSummary is one rendered statement line.
type RentalSummary struct {
	Title  string
	Amount decimal.Decimal
}
