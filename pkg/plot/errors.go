package plot

import "errors"

// ErrEmptyInput is returned when an operation is given no datasets.
var ErrEmptyInput = errors.New("no datasets supplied")

// ErrNoValues is returned when a column has no non-missing values to
// measure.
var ErrNoValues = errors.New("no values")
