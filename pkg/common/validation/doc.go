// Package validation provides common validation utilities for configuration
// parameters and combinator arguments across the lazystream library.
//
// Every helper returns a *errors.ValidationError, so callers can match the
// failure with errors.Is(err, errors.ErrInvalidConfiguration) regardless of
// which check rejected the value.
package validation
