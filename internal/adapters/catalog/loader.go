package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/okian/rentals/internal/domain/model"
	"github.com/okian/rentals/internal/domain/pricing"
)

// Dataset is a catalog plus the customers billed against it.
type Dataset struct {
	Catalog   *InMemoryStore
	Customers []model.Customer
}

// Customer finds a customer by name.
func (d *Dataset) Customer(name string) (model.Customer, bool) {
	for _, c := range d.Customers {
		if c.Name == name {
			return c, true
		}
	}
	return model.Customer{}, false
}

type movieRecord struct {
	Title    string `koanf:"title"`
	Category string `koanf:"category"`
}

// Days stays textual so fractional values are reported instead of truncated.
type rentalRecord struct {
	MovieID string `koanf:"movie_id"`
	Days    string `koanf:"days"`
}

type customerRecord struct {
	Name    string         `koanf:"name"`
	Rentals []rentalRecord `koanf:"rentals"`
}

type datasetRecord struct {
	Movies    map[string]movieRecord `koanf:"movies"`
	Customers []customerRecord       `koanf:"customers"`
}

// LoadFile reads a YAML dataset.
//
//	movies:
//	  F001: {title: Ran, category: regular}
//	customers:
//	  - name: martin
//	    rentals:
//	      - {movie_id: F001, days: 3}
func LoadFile(_ context.Context, path string) (*Dataset, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadDataset, path, err)
	}

	var rec datasetRecord
	if err := k.UnmarshalWithConf("", &rec, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadDataset, path, err)
	}
	return rec.dataset()
}

func (rec datasetRecord) dataset() (*Dataset, error) {
	movies := make(map[string]model.Movie, len(rec.Movies))
	for id, m := range rec.Movies {
		if strings.TrimSpace(m.Title) == "" {
			return nil, fmt.Errorf("%w: movie %q has no title", ErrInvalidDataset, id)
		}
		movies[id] = model.Movie{Title: m.Title, Category: model.Category(strings.TrimSpace(m.Category))}
	}

	customers := make([]model.Customer, 0, len(rec.Customers))
	for _, c := range rec.Customers {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("%w: customer without a name", ErrInvalidDataset)
		}
		rentals := make([]model.Rental, 0, len(c.Rentals))
		for i, r := range c.Rentals {
			if strings.TrimSpace(r.MovieID) == "" {
				return nil, fmt.Errorf("%w: customer %q rental %d has no movie_id", ErrInvalidDataset, c.Name, i+1)
			}
			days, err := pricing.ParseDays(r.Days)
			if err != nil {
				return nil, fmt.Errorf("%w: customer %q rental %d: %w", ErrInvalidDataset, c.Name, i+1, err)
			}
			rentals = append(rentals, model.Rental{MovieID: r.MovieID, Days: days})
		}
		customers = append(customers, model.Customer{Name: c.Name, Rentals: rentals})
	}

	return &Dataset{Catalog: NewInMemoryStore(movies), Customers: customers}, nil
}
