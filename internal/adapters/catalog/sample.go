package catalog

import "github.com/okian/rentals/internal/domain/model"

// Sample returns the built-in demonstration dataset.
func Sample() *Dataset {
	return &Dataset{
		Catalog: NewInMemoryStore(map[string]model.Movie{
			"F001": {Title: "Ran", Category: model.CategoryRegular},
			"F002": {Title: "Bleu", Category: model.CategoryRegular},
			"F003": {Title: "Sommar", Category: model.CategoryChildren},
			"F004": {Title: "Yara", Category: model.CategoryNewRelease},
		}),
		Customers: []model.Customer{
			{
				Name: "martin",
				Rentals: []model.Rental{
					{MovieID: "F001", Days: 3},
					{MovieID: "F002", Days: 1},
					{MovieID: "F003", Days: 1},
					{MovieID: "F004", Days: 1},
				},
			},
		},
	}
}
