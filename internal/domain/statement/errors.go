package statement

import "errors"

// Sentinel error kinds for this package.
var (
	ErrMovieNotFound = errors.New("movie not found")
)
