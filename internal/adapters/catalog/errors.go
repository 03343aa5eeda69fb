package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrLoadDataset    = errors.New("load dataset failed")
	ErrInvalidDataset = errors.New("invalid dataset")
)
