// Package types contains common read shapes used across the application
package types

// CatalogEntry represents a movie as listed by the catalog
type CatalogEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// StatementLine is the JSON shape of one rendered rental line
type StatementLine struct {
	Title  string `json:"title"`
	Amount string `json:"amount"`
}
